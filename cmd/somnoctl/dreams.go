package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// parseIDList turns "1,2,3" into []int64.
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	dreamsCmd := &cobra.Command{Use: "dreams", Short: "Dream operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dreams",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/dreams/")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(listCmd)

	var description, date, persons, tags string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dream entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"description": description}
			if date != "" {
				payload["dreamDate"] = date
			}
			if personIDs, err := parseIDList(persons); err != nil {
				return err
			} else if personIDs != nil {
				payload["persons"] = personIDs
			}
			if tagIDs, err := parseIDList(tags); err != nil {
				return err
			} else if tagIDs != nil {
				payload["tags"] = tagIDs
			}
			data, err := doPostJSON("/api/v1/dreams/", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Dream description (required)")
	createCmd.Flags().StringVar(&date, "date", "", "Dream date (YYYY-MM-DD, defaults to yesterday)")
	createCmd.Flags().StringVarP(&persons, "persons", "p", "", "Comma-separated person IDs")
	createCmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma-separated tag IDs")
	_ = createCmd.MarkFlagRequired("description")
	dreamsCmd.AddCommand(createCmd)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get dream by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(fmt.Sprintf("/api/v1/dreams/%s/", args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	dreamsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete dream by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete(fmt.Sprintf("/api/v1/dreams/%s/", args[0]))
		},
	}
	dreamsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(dreamsCmd)
}
