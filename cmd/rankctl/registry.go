// cmd/rankctl/registry.go
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"intel-search-workers/pkg/registry"
)

func loadRegistry(c *cli.Context) (*registry.ActivityRegistry, error) {
	return registry.LoadRegistry(c.String("path"))
}

func registryValidateCommand(c *cli.Context) error {
	reg, err := loadRegistry(c)
	if err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Registry validation passed (%d activities).\n", len(reg.Activities))
	return nil
}

func registryListCommand(c *cli.Context) error {
	reg, err := loadRegistry(c)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTASK TYPE\tSTATUS\tTIMEOUT")
	for _, a := range reg.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.TaskType, a.ImplementationStatus, a.Timeout)
	}
	return tw.Flush()
}

func registryCheckCommand(c *cli.Context) error {
	reg, err := loadRegistry(c)
	if err != nil {
		return err
	}
	result, err := reg.CheckInput(c.String("task"), c.String("vars"))
	if err != nil {
		return err
	}
	if !result.Valid {
		for _, msg := range result.GetErrorMessages() {
			fmt.Fprintln(c.App.Writer, msg)
		}
		return fmt.Errorf("variables do not match %s input schema", c.String("task"))
	}
	fmt.Fprintln(c.App.Writer, "Variables valid.")
	return nil
}

func registryAddCommand(c *cli.Context) error {
	path := c.String("path")
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	activity := registry.Activity{
		ID:                   c.String("id"),
		DisplayName:          c.String("name"),
		Description:          c.String("description"),
		Category:             c.String("category"),
		Version:              c.String("version"),
		TaskType:             c.String("task"),
		ImplementationStatus: c.String("status"),
		ErrorCodes:           []string{},
		Timeout:              c.String("timeout"),
	}
	if err := reg.Add(activity); err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := reg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Added activity: %s\n", activity.ID)
	return nil
}

func registryStatusCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: registry status <id> <status>")
	}
	id, status := c.Args().Get(0), c.Args().Get(1)

	path := c.String("path")
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return err
	}
	if err := reg.SetStatus(id, status); err != nil {
		return err
	}
	if err := reg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Updated %s status to %s\n", id, status)
	return nil
}
