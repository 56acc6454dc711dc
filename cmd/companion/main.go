package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"streamcompanion/actions"
	"streamcompanion/config"
	"streamcompanion/logging"
	"streamcompanion/tracker"
)

const (
	colorReset        = "\033[0m"
	colorGreen        = "\033[32m"
	colorYellow       = "\033[33m"
	colorRed          = "\033[31m"
	colorCyan         = "\033[36m"
	colorLightCyan    = "\033[96m"
	colorMagenta      = "\033[35m"
	colorLightMagenta = "\033[95m"
	colorWhite        = "\033[37m"
)

var configFile = flag.String("config", config.DefaultConfigFile, "YAML configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile, config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sFailed to load configuration: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
	logging.SetLevel(cfg.LogLevel)
	logger := logging.GetZeroLogger("companion::main", nil)

	sess := tracker.NewTracker(cfg.StatsFile, logger).Open()
	logger.Debug().Str(logging.SessionIDKey, sess.ID.String()).Msg("Session started")

	c := &console{
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		session: sess,
		catalog: actions.NewCatalog(),
	}
	c.handleLoadMessages()
	c.mainMenu()
}

// console is the terminal front end: one numbered menu per window tab.
type console struct {
	reader  *bufio.Reader
	out     io.Writer
	session *tracker.Session
	catalog *actions.Catalog
}

func (c *console) printf(color, format string, args ...interface{}) {
	fmt.Fprintf(c.out, color+format+colorReset, args...)
}

func (c *console) handleLoadMessages() {
	switch c.session.LoadStatus {
	case tracker.LoadNew:
		c.printf(colorYellow, "No existing stats file found, starting a new session.\n")
	case tracker.LoadReset:
		c.printf(colorRed, "Error loading stats (%v). Starting from zero.\n", c.session.LoadError)
	case tracker.LoadLoaded:
		c.printf(colorGreen, "Stats loaded: %d victories in %d games.\n", c.session.Stats.Victories, c.session.Stats.GamesPlayed)
	}
}

func (c *console) mainMenu() {
	tabs := c.catalog.Tabs()
	for {
		c.printf(colorMagenta, "\nFortnite Stream Tools:\n")
		fmt.Fprintln(c.out, "  1: Main")
		fmt.Fprintln(c.out, "  2: Stats")
		for idx, tab := range tabs {
			fmt.Fprintf(c.out, "  %d: %s\n", idx+3, tab.Title())
		}
		exit := len(tabs) + 3
		fmt.Fprintf(c.out, "  %d: Exit\n", exit)

		choice, err := c.prompt(fmt.Sprintf("%sEnter your choice (1-%d): %s", colorWhite, exit, colorReset))
		if err != nil {
			return
		}

		n, convErr := strconv.Atoi(choice)
		switch {
		case convErr != nil || n < 1 || n > exit:
			c.printf(colorRed, "Invalid choice. Please try again.\n")
		case n == 1:
			if !c.gameMenu() {
				return
			}
		case n == 2:
			c.showStatistics()
		case n == exit:
			c.printf(colorGreen, "Goodbye!\n")
			return
		default:
			if !c.tabMenu(tabs[n-3]) {
				return
			}
		}
	}
}

// gameMenu covers the Main tab and the session controls of Quick Actions.
// It returns false when input is exhausted.
func (c *console) gameMenu() bool {
	for {
		c.printf(colorLightCyan, "\nEliminations this game: %d\n", c.session.Eliminations)
		fmt.Fprintln(c.out, "  v: VICTORY ROYALE!")
		fmt.Fprintln(c.out, "  +: Add elimination")
		fmt.Fprintln(c.out, "  -: Remove elimination")
		fmt.Fprintln(c.out, "  n: Start New Game")
		fmt.Fprintln(c.out, "  t: Mark Top 10")
		fmt.Fprintln(c.out, "  r: Reset Session")
		fmt.Fprintln(c.out, "  b: Back")

		choice, err := c.prompt(fmt.Sprintf("%sEnter your choice: %s", colorWhite, colorReset))
		if err != nil {
			return false
		}

		switch strings.ToLower(choice) {
		case "v":
			_, err := c.session.Victory()
			c.reportSave(err)
			c.renderNotice(actions.VictoryNotice())
		case "+":
			c.session.AdjustEliminations(1)
		case "-":
			c.session.AdjustEliminations(-1)
		case "n":
			_, err := c.session.NewGame()
			c.reportSave(err)
			c.printf(colorGreen, "New game started. Games played: %d\n", c.session.Stats.GamesPlayed)
		case "t":
			_, err := c.session.Top10()
			c.reportSave(err)
			c.renderNotice(actions.Top10Notice())
		case "r":
			confirm, err := c.prompt(fmt.Sprintf("%sReset all session stats? (yes/no): %s", colorYellow, colorReset))
			if err != nil {
				return false
			}
			if strings.ToLower(confirm) == "yes" {
				_, err := c.session.Reset()
				c.reportSave(err)
				c.printf(colorGreen, "Session reset.\n")
			}
		case "b", "":
			return true
		default:
			c.printf(colorRed, "Invalid choice. Please try again.\n")
		}
	}
}

func (c *console) tabMenu(tab actions.Tab) bool {
	list := c.catalog.Actions(tab)
	for {
		c.printf(colorMagenta, "\n%s:\n", tab.Title())
		category := ""
		for idx, action := range list {
			if action.Category() != category {
				category = action.Category()
				c.printf(colorCyan, " %s\n", category)
			}
			fmt.Fprintf(c.out, "  %d. %s\n", idx+1, action.Name())
		}

		choice, err := c.prompt(fmt.Sprintf("%sEnter the number of the action (or 'b' to go back): %s", colorWhite, colorReset))
		if err != nil {
			return false
		}
		if choice == "b" || choice == "" {
			return true
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(list) {
			c.printf(colorRed, "Invalid selection.\n")
			continue
		}

		action := list[n-1]
		input := ""
		if p, ok := action.(actions.Prompter); ok {
			input, err = c.prompt(colorWhite + p.Prompt() + colorReset)
			if err != nil {
				return false
			}
		}
		notice, err := c.catalog.Run(context.Background(), tab, action.Name(), input)
		if err != nil {
			c.printf(colorRed, "%v\n", err)
			continue
		}
		c.renderNotice(notice)
	}
}

func (c *console) renderNotice(n actions.Notice) {
	c.printf(colorLightMagenta, "\n*** %s ***\n", n.Title)
	c.printf(colorWhite, "%s\n", n.Message)
	if len(n.Choices) == 0 {
		return
	}
	answer, err := c.prompt(fmt.Sprintf("%s(%s): %s", colorWhite, strings.Join(n.Choices, "/"), colorReset))
	if err != nil {
		return
	}
	for _, choice := range n.Choices {
		if strings.EqualFold(choice, answer) {
			c.printf(colorGreen, "Answered: %s\n", choice)
			return
		}
	}
}

func (c *console) reportSave(err error) {
	if err != nil {
		c.printf(colorYellow, "Warning: stats not saved: %v\n", err)
	}
}

func (c *console) showStatistics() {
	snap := c.session.Snapshot()
	c.printf(colorCyan, "\nSession Statistics:\n")
	c.printf(colorCyan, "  Victories:    %d\n", snap.Stats.Victories)
	c.printf(colorCyan, "  Eliminations: %d\n", snap.TotalEliminations)
	c.printf(colorCyan, "  Games Played: %d\n", snap.Stats.GamesPlayed)
	c.printf(colorCyan, "  K/D Ratio:    %.2f\n", snap.Derived.KD)
	c.printf(colorCyan, "  Win Rate:     %.0f%%\n", snap.Derived.WinRate*100)
	c.printf(colorCyan, "  Top 10s:      %d\n", snap.Stats.Top10s)
}

func (c *console) prompt(message string) (string, error) {
	fmt.Fprint(c.out, message)
	input, err := c.reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
