package service

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"inkwell/app/config"
	"inkwell/app/logging"
	"inkwell/app/repositories"
)

// CLI runs the inkwell subcommands against a configuration.
type CLI struct {
	cfg    *config.Config
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
}

// NewCLI creates a CLI reading confirmations from in and printing to out.
// Logs go to stderr.
func NewCLI(cfg *config.Config, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		cfg:    cfg,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat),
	}
}

func (c *CLI) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// confirm asks a yes/no question. Anything but y or Y is a no.
func (c *CLI) confirm(question string) bool {
	c.printf("%s [y/N] ", question)
	line, _ := c.in.ReadString('\n')
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func (c *CLI) dbExists() bool {
	_, err := os.Stat(c.cfg.DBPath)
	return err == nil
}

func (c *CLI) openStore() (*repositories.Store, error) {
	return repositories.Open(repositories.StoreOptions{
		Path:     c.cfg.DBPath,
		InMemory: c.cfg.InMemory,
		Logger:   logging.Badger(c.logger),
	})
}
