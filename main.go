package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/kavinnandha/portfolio/internal/catalog"
	"github.com/kavinnandha/portfolio/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	app := newCLIApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newCLIApp creates the CLI application. Running with no command serves the site.
func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:    "portfolio",
		Usage:   "Single-page portfolio server",
		Version: Version,
		Writer:  out,
		Commands: []*cli.Command{
			serveCmd(),
			catalogCmd(out),
			checkCmd(out),
		},
		Action: runServe,
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides PORT)"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path (overrides DB_PATH)"},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if p := c.String("port"); p != "" {
		cfg.Port = p
	}
	if db := c.String("db"); db != "" {
		cfg.DBPath = db
	}

	cat, err := catalog.Load(cfg.SiteFile)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	srv, err := newServer(cfg, cat, st, newDeliverer(cfg))
	if err != nil {
		return err
	}
	go srv.pruneVisits(context.Background())

	r, err := srv.router()
	if err != nil {
		return err
	}

	log.Printf("Serving %d projects with %s delivery", cat.Len(), cfg.MailDelivery)
	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", srv.adminToken)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return r.Run(":" + cfg.Port)
}

func catalogCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "List the projects in the site file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "site", EnvVars: []string{"SITE_FILE"}, Usage: "Site content file (default: embedded)"},
			&cli.BoolFlag{Name: "json", Usage: "Print projects as JSON"},
		},
		Action: func(c *cli.Context) error {
			cat, err := catalog.Load(c.String("site"))
			if err != nil {
				return err
			}
			if c.Bool("json") {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cat.Projects())
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTECHNOLOGIES")
			for _, p := range cat.Projects() {
				fmt.Fprintf(w, "%d\t%s\t%d\n", p.ID, p.Title, len(p.Technologies))
			}
			return w.Flush()
		},
	}
}

func checkCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate a site content file",
		ArgsUsage: "[site.toml]",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				path = os.Getenv("SITE_FILE")
			}
			cat, err := catalog.Load(path)
			if err != nil {
				return err
			}
			if path == "" {
				path = "embedded site.toml"
			}
			fmt.Fprintf(out, "%s: ok (%d projects, %d skill categories)\n", path, cat.Len(), len(cat.Skills()))
			return nil
		},
	}
}
