// Command cli is an operator tool for the journal service API.
//
// Usage:
//
//	cli <command> [flags]
//
// Commands:
//
//	submit   record one journal entry
//	history  list a student's entries
//	class    list every entry in a class
//	stats    windowed emotion distribution for a class
//	at-risk  students with a sustained negative streak
//	report   export a class CSV report and print its download URL
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/client"
)

const usage = `usage: cli <command> [flags]

commands:
  submit   -student -class -date -text
  history  -student
  class    -class
  stats    -class [-start] [-end]
  at-risk  -class [-start] [-end]
  report   -class

common flags:
  -s  server base URL (default http://127.0.0.1:8080, env MOODJOURNAL_SERVER)
`

func serverURL(fs *flag.FlagSet) *string {
	def := "http://127.0.0.1:8080"
	if v := os.Getenv("MOODJOURNAL_SERVER"); v != "" {
		def = v
	}
	return fs.String("s", def, "server base URL")
}

func printJSON(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	fmt.Println(buf.String())
	return nil
}

func run(args []string) error {

	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	server := serverURL(fs)
	student := fs.String("student", "", "student id")
	class := fs.String("class", "", "class id")
	date := fs.String("date", "", "entry date (YYYY-MM-DD)")
	text := fs.String("text", "", "entry text")
	start := fs.String("start", "", "window start (YYYY-MM-DD)")
	end := fs.String("end", "", "window end (YYYY-MM-DD)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	c := client.New(*server, 60*time.Second)

	var raw json.RawMessage
	var err error

	switch cmd {
	case "submit":
		if *student == "" || *class == "" || *date == "" || *text == "" {
			return fmt.Errorf("submit requires -student, -class, -date and -text")
		}
		raw, err = c.SubmitEntry(ctx, *student, *class, *date, *text)
	case "history":
		if *student == "" {
			return fmt.Errorf("history requires -student")
		}
		raw, err = c.StudentHistory(ctx, *student)
	case "class":
		if *class == "" {
			return fmt.Errorf("class requires -class")
		}
		raw, err = c.ClassEntries(ctx, *class)
	case "stats":
		if *class == "" {
			return fmt.Errorf("stats requires -class")
		}
		raw, err = c.ClassStats(ctx, *class, *start, *end)
	case "at-risk":
		if *class == "" {
			return fmt.Errorf("at-risk requires -class")
		}
		raw, err = c.AtRisk(ctx, *class, *start, *end)
	case "report":
		if *class == "" {
			return fmt.Errorf("report requires -class")
		}
		raw, err = c.ClassReport(ctx, *class)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	if err != nil {
		return err
	}

	return printJSON(raw)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
