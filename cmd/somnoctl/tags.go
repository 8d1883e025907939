package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	tagsCmd := &cobra.Command{Use: "tags", Short: "Tag operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/tags/")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	tagsCmd.AddCommand(listCmd)

	var name, description string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			data, err := doPostJSON("/api/v1/tags/", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Tag name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	_ = createCmd.MarkFlagRequired("name")
	tagsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get tag by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/v1/tags/%s/", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	tagsCmd.AddCommand(getCmd)

	var upName, upDescription string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update tag fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("name") {
				payload["name"] = upName
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = upDescription
			}
			data, err := doPutJSON(fmt.Sprintf("/api/v1/tags/%s/", args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&upName, "name", "n", "", "New name")
	updateCmd.Flags().StringVarP(&upDescription, "description", "d", "", "New description")
	tagsCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete tag by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("/api/v1/tags/%s/", args[0]))
		},
	}
	tagsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(tagsCmd)
}
