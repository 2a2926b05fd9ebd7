package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inkwell/app/client"
	"inkwell/app/config"
	"inkwell/app/models"
	"inkwell/app/services"
)

const clientTimeout = 30 * time.Second

var seedCategories = []struct {
	name        string
	description string
}{
	{"Technology", "Posts about technology, programming, and digital innovations"},
	{"Lifestyle", "Posts about daily life, habits, and personal development"},
	{"Travel", "Posts about travel experiences, destinations, and tips"},
	{"Food", "Posts about recipes, cooking, and food experiences"},
}

// HandleCommand loads the configuration and runs a subcommand, returning an
// exit code.
func HandleCommand(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return 1
	}
	return NewCLI(cfg, os.Stdin, os.Stdout).Run(args)
}

// Run dispatches a subcommand.
func (c *CLI) Run(args []string) int {
	if len(args) < 1 {
		c.PrintHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return c.RunAppServer()
	case "clean":
		return c.clean()
	case "init":
		return c.initDb()
	case "backup":
		return c.backup()
	case "restore":
		if len(args) < 2 {
			c.println("Error: backup file path required for restore")
			return 1
		}
		return c.restore(args[1])
	case "seed":
		return c.seed()
	case "posts":
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		return c.listPosts(category)
	case "help":
		c.PrintHelp()
		return 0
	default:
		c.printf("Unknown command: %s\n\n", cmd)
		c.PrintHelp()
		return 1
	}
}

// PrintHelp prints the subcommand usage.
func (c *CLI) PrintHelp() {
	c.printf("%s\n", HelpText)
}

// HelpText lists every subcommand.
const HelpText = `Usage: inkwell <command> [options]

Commands:
  serve                 Run the blog API
  init                  Initialize a new empty database
  clean                 Clean the blog database
  backup                Create a backup of the database
  restore <file>        Restore database from backup
  seed                  Replace all categories with the default set
  posts [category]      List posts, optionally only those in a category
  help                  Display this help message
  version               Show version information
`

func (c *CLI) clean() int {
	if !c.dbExists() {
		c.println("Database is already clean (does not exist)")
		return 0
	}

	if !c.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		c.println("Operation cancelled")
		return 0
	}

	if err := os.RemoveAll(c.cfg.DBPath); err != nil {
		c.printf("Failed to clean database: %v\n", err)
		return 1
	}
	c.println("Database cleaned successfully")
	return 0
}

func (c *CLI) initDb() int {
	if c.dbExists() {
		c.println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return 0
	}

	if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
		c.printf("Failed to create database directory: %v\n", err)
		return 1
	}

	store, err := c.openStore()
	if err != nil {
		c.printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer store.Close()

	c.println("Database initialized successfully")
	return 0
}

func (c *CLI) backup() int {
	if !c.dbExists() {
		c.println("No database exists to backup")
		return 1
	}

	if err := os.MkdirAll(c.cfg.BackupDir, 0755); err != nil {
		c.printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	store, err := c.openStore()
	if err != nil {
		c.printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	backupFile := filepath.Join(c.cfg.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		c.printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Backup(f); err != nil {
		c.printf("Failed to backup database: %v\n", err)
		return 1
	}

	c.printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

func (c *CLI) restore(backupFile string) int {
	fi, err := os.Stat(backupFile)
	if err != nil {
		c.printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if fi.Size() == 0 {
		c.printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if c.dbExists() {
		if !c.confirm("Existing database found. Do you want to replace it?") {
			c.println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(c.cfg.DBPath); err != nil {
			c.printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
		c.printf("Failed to create database directory: %v\n", err)
		return 1
	}

	store, err := c.openStore()
	if err != nil {
		c.printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		c.printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := store.Load(f); err != nil {
		c.printf("Failed to restore database: %v\n", err)
		return 1
	}

	c.println("Database restored successfully")
	return 0
}

func (c *CLI) seed() int {
	store, err := c.openStore()
	if err != nil {
		c.printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	inputs := make([]services.CategoryInput, 0, len(seedCategories))
	for _, sc := range seedCategories {
		name, description := sc.name, sc.description
		inputs = append(inputs, services.CategoryInput{Name: &name, Description: &description})
	}

	created, err := services.NewCategoryService(store.Categories()).ReplaceAll(inputs)
	if err != nil {
		c.printf("Failed to seed categories: %v\n", services.MessageOf(err))
		c.logger.Error("seeding categories failed", "error", err)
		return 1
	}
	for _, category := range created {
		c.printf("Created category %s (%s)\n", category.Name, category.ID)
	}
	c.println("Database seeded successfully")
	return 0
}

func (c *CLI) listPosts(category string) int {
	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	api := client.New(c.cfg.APIURL, nil)
	var (
		posts []*models.Post
		err   error
	)
	if category == "" {
		posts, err = api.ListAllPosts(ctx)
	} else {
		posts, err = api.PostsByCategory(ctx, category)
	}
	if err != nil {
		c.printf("Failed to fetch posts: %v\n", err)
		return 1
	}

	if err := client.RenderPosts(c.out, posts); err != nil {
		c.printf("Failed to render posts: %v\n", err)
		return 1
	}
	return 0
}
