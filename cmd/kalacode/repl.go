package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kenzoyan/kalacode/agent"
	"github.com/kenzoyan/kalacode/internal/clifmt"
	"github.com/kenzoyan/kalacode/internal/logutil"
	"github.com/kenzoyan/kalacode/internal/pathutil"
	"github.com/kenzoyan/kalacode/internal/transcript"
)

func runREPL(ctx context.Context) error {
	log, err := logutil.LoggerFromViper()
	if err != nil {
		return err
	}

	engine := engineFromViper(log)
	sessionID := transcript.NewSessionID()

	printLanding(engine)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(clifmt.Key("> "))
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return flushAndReport(ctx, engine)
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") || line == "exit" {
			quit, err := handleCommand(ctx, engine, sessionID, line)
			if err != nil {
				fmt.Println(clifmt.Errorf("%v", err))
			}
			if quit {
				return flushAndReport(ctx, engine)
			}
			continue
		}

		if _, err := engine.ProcessInput(ctx, line); err != nil {
			switch {
			case errors.Is(err, agent.ErrIterationLimit):
				fmt.Println(clifmt.Warn("Stopped: too many tool rounds for one input. Rephrase or split the task."))
			case errors.Is(err, context.Canceled):
				return flushAndReport(context.Background(), engine)
			default:
				fmt.Println(clifmt.Errorf("%v", err))
			}
			continue
		}
		fmt.Println()
	}
}

// handleCommand runs a slash command. It reports whether the REPL
// should exit.
func handleCommand(ctx context.Context, engine *agent.Engine, sessionID, line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/q", "/quit", "exit":
		return true, nil

	case "/c":
		if err := engine.Flush(ctx); err != nil {
			return false, err
		}
		engine.Reset()
		fmt.Println(clifmt.Dim("Context cleared."))
		return false, nil

	case "/stats":
		fmt.Println(clifmt.Dim(engine.Stats().String()))
		return false, nil

	case "/tools":
		printToolTable()
		return false, nil

	case "/save":
		path := defaultTranscriptPath(sessionID)
		if len(fields) > 1 {
			path = pathutil.ExpandHomePath(fields[1])
		}
		fm := transcript.NewFrontmatter(sessionID, engine.Window().Snapshot(), time.Now())
		if err := transcript.Export(path, fm, engine.Window().Snapshot()); err != nil {
			return false, err
		}
		fmt.Println(clifmt.Success("Saved " + path))
		return false, nil

	case "/memory":
		sub := ""
		if len(fields) > 1 {
			sub = fields[1]
		}
		return false, runMemoryCommand(engine, sub)

	default:
		fmt.Println(clifmt.Warn("Unknown command. Available: /q /c /stats /tools /save /memory"))
		return false, nil
	}
}

func runMemoryCommand(engine *agent.Engine, sub string) error {
	store := engine.Store()
	if store == nil {
		fmt.Println(clifmt.Dim("Long-term memory is disabled."))
		return nil
	}
	switch sub {
	case "show", "":
		text, err := store.Read()
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println(clifmt.Success("Long-term memory cleared."))
		return nil
	default:
		fmt.Println(clifmt.Warn("Usage: /memory show|clear"))
		return nil
	}
}

func flushAndReport(ctx context.Context, engine *agent.Engine) error {
	if err := engine.Flush(ctx); err != nil {
		fmt.Println(clifmt.Errorf("memory flush failed: %v", err))
	}
	fmt.Println(clifmt.Dim("Bye."))
	return nil
}

func printLanding(engine *agent.Engine) {
	fmt.Println(clifmt.Headerf("kalacode %s", version))
	fmt.Printf("%s %s  %s %s\n",
		clifmt.Key("model:"), viper.GetString("llm.model"),
		clifmt.Key("provider:"), viper.GetString("llm.provider"),
	)
	if store := engine.Store(); store != nil {
		fmt.Printf("%s %s\n", clifmt.Key("memory:"), store.FilePath())
	} else {
		fmt.Printf("%s %s\n", clifmt.Key("memory:"), clifmt.Dim("disabled"))
	}
	fmt.Println(clifmt.Dim("Commands: /q /c /stats /tools /save [path] /memory show|clear"))
	fmt.Println()
}

func printToolTable() {
	var rows []clifmt.NameDetailRow
	for _, tool := range registryFromViper().List() {
		rows = append(rows, clifmt.NameDetailRow{Name: tool.Name(), Detail: tool.Description()})
	}
	clifmt.PrintNameDetailTable(os.Stdout, clifmt.NameDetailTableOptions{
		Title: "Tools",
		Rows:  rows,
	})
}

func defaultTranscriptPath(sessionID string) string {
	dirName := strings.TrimSpace(viper.GetString("transcripts.dir_name"))
	if dirName == "" {
		dirName = "transcripts"
	}
	return pathutil.ResolveStateFile(viper.GetString("file_state_dir"), filepath.Join(dirName, sessionID+".md"))
}
