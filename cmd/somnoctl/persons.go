package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	personsCmd := &cobra.Command{Use: "persons", Short: "Person operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List persons",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/persons/")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	personsCmd.AddCommand(listCmd)

	var name, description, photo string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a person",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			if photo != "" {
				payload["photoUrl"] = photo
			}
			data, err := doPostJSON("/api/v1/persons/", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Person name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	createCmd.Flags().StringVarP(&photo, "photo", "p", "", "Photo URL")
	_ = createCmd.MarkFlagRequired("name")
	personsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get person by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/v1/persons/%s/", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	personsCmd.AddCommand(getCmd)

	var upName, upDescription, upPhoto string
	updateCmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update person fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{}
			if cmd.Flags().Changed("name") {
				payload["name"] = upName
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = upDescription
			}
			if cmd.Flags().Changed("photo") {
				payload["photoUrl"] = upPhoto
			}
			data, err := doPutJSON(fmt.Sprintf("/api/v1/persons/%s/", args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&upName, "name", "n", "", "New name")
	updateCmd.Flags().StringVarP(&upDescription, "description", "d", "", "New description")
	updateCmd.Flags().StringVarP(&upPhoto, "photo", "p", "", "New photo URL")
	personsCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete person by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("/api/v1/persons/%s/", args[0]))
		},
	}
	personsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(personsCmd)
}
