package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agenttools/agenttools/internal/domain/model"
	"github.com/agenttools/agenttools/internal/domain/port/driven"
)

// NewToolCmd creates the tool command group for the tool-registry server.
func NewToolCmd(registryFn func() driven.ToolRegistry, outputFn func() *Output) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Manage registered tools",
	}

	cmd.AddCommand(
		newToolListCmd(registryFn, outputFn),
		newToolRegisterCmd(registryFn, outputFn),
		newToolDeleteCmd(registryFn, outputFn),
		newToolRemoveCmd(registryFn, outputFn),
	)

	return cmd
}

func newToolListCmd(registryFn func() driven.ToolRegistry, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := registryFn()
			out := outputFn()

			tools, err := registry.ListTools(cmd.Context())
			if err != nil {
				return err
			}

			headers := []string{"ID", "NAME", "DESCRIPTION"}
			rows := make([][]string, len(tools))
			for i, t := range tools {
				rows[i] = []string{t.ID, t.Name, t.Description}
			}

			out.Print(headers, rows, tools)
			return nil
		},
	}
}

func newToolRegisterCmd(registryFn func() driven.ToolRegistry, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "register FILE",
		Short: "Register tools from a JSON definitions file",
		Long: "Register tools from a JSON file holding either a single tool definition " +
			"or an array of them. Tools already registered under the same name are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := registryFn()
			out := outputFn()

			tools, err := readToolDefinitions(args[0])
			if err != nil {
				return err
			}

			summary, err := registry.RegisterAll(cmd.Context(), tools)
			if err != nil {
				return err
			}

			out.Print(
				[]string{"REGISTERED", "SKIPPED", "FAILED"},
				[][]string{{
					strconv.Itoa(summary.Registered),
					strconv.Itoa(summary.Skipped),
					strconv.Itoa(summary.Failed),
				}},
				summary,
			)
			if summary.Failed > 0 {
				return fmt.Errorf("%d tool registrations failed", summary.Failed)
			}
			return nil
		},
	}
}

// readToolDefinitions loads tool definitions from a JSON file. A single
// object is treated as a one-element list.
func readToolDefinitions(path string) ([]model.Tool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tool definitions: %w", err)
	}

	var tools []model.Tool
	if err := json.Unmarshal(data, &tools); err == nil {
		return tools, nil
	}

	var tool model.Tool
	if err := json.Unmarshal(data, &tool); err != nil {
		return nil, fmt.Errorf("parse tool definitions %s: %w", path, err)
	}
	return []model.Tool{tool}, nil
}

func newToolDeleteCmd(registryFn func() driven.ToolRegistry, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TOOL_ID",
		Short: "Delete a tool by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := registryFn()
			out := outputFn()

			if err := registry.DeleteTool(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Deleted tool %s", args[0]))
			return nil
		},
	}
}

func newToolRemoveCmd(registryFn func() driven.ToolRegistry, outputFn func() *Output) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME...",
		Short: "Delete tools by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := registryFn()
			out := outputFn()

			deleted, err := registry.DeleteByName(cmd.Context(), args)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Deleted %d of %d tools", deleted, len(args)))
			return nil
		},
	}
}
