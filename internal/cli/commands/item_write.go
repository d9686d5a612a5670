package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"Catalog/internal/cli/api"
	"Catalog/internal/config"
)

type itemAddCmd struct{}

func (itemAddCmd) Name() string { return "item-add" }
func (itemAddCmd) Description() string {
	return "Create an item"
}
func (itemAddCmd) Usage() string {
	return "item-add [--category id] [--tag id]... <name> <description>"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	// разрешаем только префиксные флаги перед позиционными аргументами
	fs := flag.NewFlagSet("item-add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	category := fs.Int64("category", 0, "category id")
	var tags idList
	fs.Var(&tags, "tag", "tag id (repeatable)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return ErrUsage
	}
	name, desc := fs.Arg(0), fs.Arg(1)
	fields := api.ItemFields{Name: &name, Description: &desc}
	if *category > 0 {
		fields.CategoryID = category
	}
	if len(tags) > 0 {
		ids := []int64(tags)
		fields.TagIDs = &ids
	}

	c, err := client(cfg, true)
	if err != nil {
		return err
	}
	it, err := c.CreateItem(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	printItem(it)
	return nil
}

type itemEditCmd struct{}

func (itemEditCmd) Name() string { return "item-edit" }
func (itemEditCmd) Description() string {
	return "Change item fields (owner or admin)"
}
func (itemEditCmd) Usage() string {
	return "item-edit [--name s] [--description s] [--category id|0] [--tag id]... [--clear-tags] <id>"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("item-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "new name")
	desc := fs.String("description", "", "new description")
	category := fs.Int64("category", 0, "category id, 0 clears")
	var tags idList
	fs.Var(&tags, "tag", "tag id (repeatable), replaces the set")
	clearTags := fs.Bool("clear-tags", false, "remove all tags")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	var fields api.ItemFields
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			fields.Name = name
		case "description":
			fields.Description = desc
		case "category":
			fields.CategoryID = category
		}
	})
	switch {
	case *clearTags && len(tags) > 0:
		return ErrUsage
	case *clearTags:
		fields.TagIDs = &[]int64{}
	case len(tags) > 0:
		ids := []int64(tags)
		fields.TagIDs = &ids
	}
	if fields == (api.ItemFields{}) {
		return ErrUsage
	}

	c, err := client(cfg, true)
	if err != nil {
		return err
	}
	it, err := c.UpdateItem(ctx, id, fields)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	printItem(it)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Delete an item (owner or admin)" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := client(cfg, true)
	if err != nil {
		return err
	}
	if err := c.DeleteItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted item %d\n", id)
	return nil
}

func init() {
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemDeleteCmd{})
}
