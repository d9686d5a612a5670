package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"Catalog/internal/cli/api"
	"Catalog/internal/config"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "List or search items"
}
func (itemsCmd) Usage() string {
	return "items [--search s] [--category id] [--tag id]... [--limit n] [--offset n]"
}

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var q api.ItemQuery
	var tags idList
	limit, offset := -1, -1
	fs.StringVar(&q.Search, "search", "", "substring of name or description")
	fs.Int64Var(&q.CategoryID, "category", 0, "category id")
	fs.Var(&tags, "tag", "tag id (repeatable)")
	fs.IntVar(&limit, "limit", -1, "page size")
	fs.IntVar(&offset, "offset", -1, "page offset")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	q.TagIDs = tags
	if limit >= 0 {
		q.Limit = &limit
	}
	if offset >= 0 {
		q.Offset = &offset
	}

	c, err := client(cfg, false)
	if err != nil {
		return err
	}
	list, err := c.Items(ctx, q)
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	for _, it := range list.Items {
		extra := ""
		if it.Category != nil {
			extra += "  category=" + *it.Category
		}
		if len(it.Tags) > 0 {
			extra += "  tags=" + strings.Join(it.Tags, ",")
		}
		fmt.Fprintf(Out, "- %d  %s%s\n", it.ID, it.Name, extra)
	}
	fmt.Fprintf(Out, "Shown: %d, total: %d\n", len(list.Items), list.Total)
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string { return "item-get" }
func (itemGetCmd) Description() string {
	return "Show an item by id or uuid"
}
func (itemGetCmd) Usage() string { return "item-get <id|uuid>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	c, err := client(cfg, false)
	if err != nil {
		return err
	}
	it, err := c.Item(ctx, args[0])
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemGetCmd{})
}
