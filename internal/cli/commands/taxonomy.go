package commands

import (
	"context"
	"fmt"

	"Catalog/internal/config"
)

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "List categories" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := client(cfg, false)
	if err != nil {
		return err
	}
	cats, err := c.Categories(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		fmt.Fprintln(Out, "No categories")
		return nil
	}
	for _, cat := range cats {
		fmt.Fprintf(Out, "- %d  %s  %s\n", cat.ID, cat.Name, orDash(cat.Description))
	}
	return nil
}

type tagsCmd struct{}

func (tagsCmd) Name() string        { return "tags" }
func (tagsCmd) Description() string { return "List tags" }
func (tagsCmd) Usage() string       { return "tags" }

func (tagsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := client(cfg, false)
	if err != nil {
		return err
	}
	tags, err := c.Tags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Fprintln(Out, "No tags")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintf(Out, "- %d  %s\n", tag.ID, tag.Name)
	}
	return nil
}

type tagAddCmd struct{}

func (tagAddCmd) Name() string        { return "tag-add" }
func (tagAddCmd) Description() string { return "Create a tag" }
func (tagAddCmd) Usage() string       { return "tag-add <name>" }

func (tagAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	c, err := client(cfg, true)
	if err != nil {
		return err
	}
	tag, err := c.CreateTag(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created tag %d  %s\n", tag.ID, tag.Name)
	return nil
}

func init() {
	RegisterCmd(categoriesCmd{})
	RegisterCmd(tagsCmd{})
	RegisterCmd(tagAddCmd{})
}
