package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"lineup-manager/internal/client"
	"lineup-manager/internal/constants"
	"lineup-manager/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const usage = `usage: lineupctl [-server URL] <command> [args]

commands:
  players [default|number|position]  list registered players
  lineup                             show the batting order
  innings                            show the inning roster
  random [player ids...]             generate a lineup (all players when none given)
  reverse                            reverse the batting order
  add-dh                             append a DH slot
  export                             print the roster as CSV
`

func main() {
	_ = godotenv.Load()
	log := logger.SetLevel(zerolog.WarnLevel)

	defaultURL := os.Getenv("LINEUP_SERVER_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	serverURL := flag.String("server", defaultURL, "lineup server base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ClientTimeout)
	defer cancel()

	if err := run(ctx, client.New(*serverURL), flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "players":
		sort := "default"
		if len(args) > 0 {
			sort = args[0]
		}
		players, err := c.Players(ctx, sort)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNO\tNAME\tMAIN\tSUB1\tSUB2")
		for _, p := range players {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Number, p.Name, p.MainPosition, p.SubPosition1, p.SubPosition2)
		}
		return tw.Flush()

	case "lineup":
		return printTable(c.LineupTable(ctx))

	case "innings":
		return printTable(c.InningsTable(ctx))

	case "random":
		if _, err := c.Random(ctx, args); err != nil {
			return err
		}
		return printTable(c.LineupTable(ctx))

	case "reverse":
		if _, err := c.Reverse(ctx); err != nil {
			return err
		}
		return printTable(c.LineupTable(ctx))

	case "add-dh":
		if _, err := c.AddDH(ctx); err != nil {
			return err
		}
		return printTable(c.LineupTable(ctx))

	case "export":
		csv, err := c.ExportCSV(ctx)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(csv)
		return err
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func printTable(table string, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, table)
	return err
}
