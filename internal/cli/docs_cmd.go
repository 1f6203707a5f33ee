// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// docs_cmd.go - Indexed-document commands.
//
// Command: docs (alias: documents)
// Short:   List indexed documents or open the backend API docs
//
// Command: index
// Short:   Index one or more files on the backend
//
// Examples:
//
//	filesearch docs
//	filesearch docs open
//	filesearch index ~/Documents/report.pdf ~/Documents/budget.xlsx
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/jeranaias/filesearch-tui/internal/backend"
)

// HandleDocs handles the docs command.
func HandleDocs(args Args) {
	cfg := loadConfig(args)
	client := newBackendClient(cfg)
	ctx := context.Background()

	switch args.Subcommand {
	case "", "list":
		resp, err := client.IndexedDocuments(ctx)
		if err != nil {
			exitErr(err)
		}
		if args.JSON {
			out, _ := json.MarshalIndent(resp, "", "  ")
			fmt.Println(string(out))
			return
		}
		printDocumentList(resp)

	case "open":
		url := client.DocsURL()
		if err := openBrowser(url); err != nil {
			exitErr(fmt.Errorf("could not open a browser; the API docs are at %s", url))
		}
		fmt.Println(DimStyle.Render("opened " + url))

	default:
		exitErr(fmt.Errorf("unknown docs subcommand %q (try list, open)", args.Subcommand))
	}
}

// HandleIndex handles the index command.
func HandleIndex(args Args) {
	if len(args.Raw) == 0 {
		exitErr(errors.New("no files given; try: filesearch index <path>"))
	}

	cfg := loadConfig(args)
	client := newBackendClient(cfg)
	ctx := context.Background()

	if !ensureBackend(ctx, client, cfg, args.Quiet) {
		exitErr(fmt.Errorf("backend is not reachable at %s", client.BaseURL()))
	}

	failed := 0
	for _, path := range args.Raw {
		resp, err := client.IndexDocument(ctx, path)
		if err != nil {
			failed++
			fmt.Printf("%s %s: %s\n", RenderStatus("fail"), path, err.Error())
			continue
		}
		fmt.Printf("%s %s\n", RenderStatus("ok"), resp.Message)
	}
	if failed > 0 {
		exitErr(fmt.Errorf("%d of %d files failed to index", failed, len(args.Raw)))
	}
}

// printDocumentList prints a document table.
func printDocumentList(resp *backend.ListDocumentsResponse) {
	if resp.Count == 0 {
		fmt.Println(DimStyle.Render("No documents indexed yet. Use `filesearch index <path>` to add one."))
		return
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("%d indexed documents", resp.Count)))
	for _, doc := range resp.Documents {
		fmt.Printf("  %s %s\n",
			ValueStyle.Render(doc.Filename),
			DimStyle.Render(fmt.Sprintf("(%d chunks, %s)", doc.ChunkCount, doc.FilePath)))
	}
}

// openBrowser opens a URL with the platform's default handler.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
