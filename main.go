package main

import (
	"fmt"
	"os"
	"strings"

	"inkwell/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain handles the top-level commands and hands everything else to the
// service package.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", CliVersion)
	default:
		if code := service.HandleCommand(append([]string{cmd}, os.Args[2:]...)); code != 0 {
			exit(code)
		}
	}
}

func printHelp() {
	fmt.Print(service.HelpText + "\n")
}
