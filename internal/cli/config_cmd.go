// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command.
//
// Command: config
// Short:   Show, get, set, and locate configuration
//
// Examples:
//
//	filesearch config show
//	filesearch config get api.url
//	filesearch config set session.id review-2026
//	filesearch config path
package cli

import (
	"fmt"

	"github.com/jeranaias/filesearch-tui/internal/config"
)

// HandleConfig handles the config command.
func HandleConfig(args Args) {
	cfg := config.Global()

	switch args.Subcommand {
	case "", "show":
		fmt.Println(TitleStyle.Render("filesearch configuration"))
		for _, key := range config.GetAllKeys() {
			val, err := cfg.Get(key)
			if err != nil {
				continue
			}
			fmt.Printf("%s %v\n", LabelStyle.Render(key), ValueStyle.Render(fmt.Sprintf("%v", val)))
		}

	case "get":
		key := positional(args, 1)
		if key == "" {
			exitErr(fmt.Errorf("usage: filesearch config get <key>"))
		}
		val, err := cfg.Get(key)
		if err != nil {
			exitErr(err)
		}
		fmt.Printf("%v\n", val)

	case "set":
		key := positional(args, 1)
		val := positional(args, 2)
		if key == "" || val == "" {
			exitErr(fmt.Errorf("usage: filesearch config set <key> <value>"))
		}
		if err := cfg.Set(key, val); err != nil {
			exitErr(err)
		}
		if err := config.Save(cfg); err != nil {
			exitErr(err)
		}
		fmt.Println(SuccessStyle.Render("saved ") + key + " = " + val)

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			exitErr(err)
		}
		fmt.Println(path)

	default:
		exitErr(fmt.Errorf("unknown config subcommand %q (try show, get, set, path)", args.Subcommand))
	}
}

// positional returns args.Raw[i], or "".
func positional(args Args, i int) string {
	if i < 0 || i >= len(args.Raw) {
		return ""
	}
	return args.Raw[i]
}
