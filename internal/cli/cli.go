// Package cli implements the cecil command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cecil-earth/cecil-go/pkg/logging"
)

const usage = `usage: cecil [--config file] [--debug] [--pretty] <command> [options]
commands:
  aois           list | get | create | archive | restore
  datasets       list | get
  subscriptions  list | get | create | archive | restore | files
  webhooks       list | get | create | delete
  load           --subscription <id> [--out file.csv]`

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	fs := flag.NewFlagSet("cecil", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file (default ~/.cecil/config.yaml)")
	debug := fs.Bool("debug", false, "enable debug logging")
	pretty := fs.Bool("pretty", false, "human-friendly log output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errors.New(usage)
	}

	logging.Init(*debug, *pretty)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch rest[0] {
	case "aois":
		return runAOIs(ctx, cfg, rest[1:])
	case "datasets":
		return runDatasets(ctx, cfg, rest[1:])
	case "subscriptions":
		return runSubscriptions(ctx, cfg, rest[1:])
	case "webhooks":
		return runWebhooks(ctx, cfg, rest[1:])
	case "load":
		return runLoad(ctx, cfg, rest[1:])
	default:
		return fmt.Errorf("unknown command: %s", rest[0])
	}
}

func runAOIs(ctx context.Context, cfg Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cecil aois <list|get|create|archive|restore> [options]")
	}

	switch args[0] {
	case "list":
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		aois, err := client.ListAOIs(ctx)
		if err != nil {
			return err
		}
		return printJSON(aois)

	case "get":
		id, err := parseID("aois get", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		aoi, err := client.GetAOI(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(aoi)

	case "create":
		fs := flag.NewFlagSet("aois create", flag.ContinueOnError)
		name := fs.String("name", "", "AOI name")
		geometryPath := fs.String("geometry", "", "GeoJSON geometry file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" {
			return errors.New("--name is required")
		}
		if *geometryPath == "" {
			return errors.New("--geometry is required")
		}

		data, err := os.ReadFile(*geometryPath)
		if err != nil {
			return fmt.Errorf("read geometry: %w", err)
		}
		var geometry map[string]any
		if err := json.Unmarshal(data, &geometry); err != nil {
			return fmt.Errorf("parse geometry %s: %w", *geometryPath, err)
		}

		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		aoi, err := client.CreateAOI(ctx, *name, geometry)
		if err != nil {
			return err
		}
		return printJSON(aoi)

	case "archive":
		id, err := parseID("aois archive", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		aoi, err := client.ArchiveAOI(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(aoi)

	case "restore":
		id, err := parseID("aois restore", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		aoi, err := client.RestoreAOI(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(aoi)

	default:
		return fmt.Errorf("unknown aois action: %s", args[0])
	}
}

func runDatasets(ctx context.Context, cfg Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cecil datasets <list|get> [options]")
	}

	switch args[0] {
	case "list":
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		datasets, err := client.ListDatasets(ctx)
		if err != nil {
			return err
		}
		return printJSON(datasets)

	case "get":
		id, err := parseID("datasets get", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		ds, err := client.GetDataset(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(ds)

	default:
		return fmt.Errorf("unknown datasets action: %s", args[0])
	}
}

func runSubscriptions(ctx context.Context, cfg Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cecil subscriptions <list|get|create|archive|restore|files> [options]")
	}

	switch args[0] {
	case "list":
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		subs, err := client.ListSubscriptions(ctx)
		if err != nil {
			return err
		}
		return printJSON(subs)

	case "get":
		id, err := parseID("subscriptions get", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		sub, err := client.GetSubscription(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(sub)

	case "create":
		fs := flag.NewFlagSet("subscriptions create", flag.ContinueOnError)
		aoiID := fs.String("aoi", "", "AOI id")
		datasetID := fs.String("dataset", "", "dataset id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *aoiID == "" {
			return errors.New("--aoi is required")
		}
		if *datasetID == "" {
			return errors.New("--dataset is required")
		}

		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		sub, err := client.CreateSubscription(ctx, *aoiID, *datasetID)
		if err != nil {
			return err
		}
		return printJSON(sub)

	case "archive":
		id, err := parseID("subscriptions archive", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		sub, err := client.ArchiveSubscription(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(sub)

	case "restore":
		id, err := parseID("subscriptions restore", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		sub, err := client.RestoreSubscription(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(sub)

	case "files":
		id, err := parseID("subscriptions files", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		files, err := client.GetSubscriptionFiles(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(files)

	default:
		return fmt.Errorf("unknown subscriptions action: %s", args[0])
	}
}

func runWebhooks(ctx context.Context, cfg Config, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: cecil webhooks <list|get|create|delete> [options]")
	}

	switch args[0] {
	case "list":
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		hooks, err := client.ListWebhooks(ctx)
		if err != nil {
			return err
		}
		return printJSON(hooks)

	case "get":
		id, err := parseID("webhooks get", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		hook, err := client.GetWebhook(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(hook)

	case "create":
		fs := flag.NewFlagSet("webhooks create", flag.ContinueOnError)
		callbackURL := fs.String("url", "", "callback URL")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *callbackURL == "" {
			return errors.New("--url is required")
		}

		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		hook, err := client.CreateWebhook(ctx, *callbackURL)
		if err != nil {
			return err
		}
		return printJSON(hook)

	case "delete":
		id, err := parseID("webhooks delete", args[1:])
		if err != nil {
			return err
		}
		client, err := cfg.newClient()
		if err != nil {
			return err
		}
		return client.DeleteWebhook(ctx, id)

	default:
		return fmt.Errorf("unknown webhooks action: %s", args[0])
	}
}

// parseID parses the single --id flag common to get/archive/restore/delete
// actions.
func parseID(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "resource id")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *id == "" {
		return "", errors.New("--id is required")
	}
	return *id, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
