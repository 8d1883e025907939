package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregated dashboard data",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/dashboard/")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(dashboardCmd)

	var description string
	var dreamID int64
	interpretCmd := &cobra.Command{
		Use:   "interpret",
		Short: "Request an interpretation for a dream description",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{"description": description}
			if dreamID > 0 {
				payload["dreamId"] = dreamID
			}
			data, err := doPostJSON("/api/v1/interpret/", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	interpretCmd.Flags().StringVarP(&description, "description", "d", "", "Dream description (required)")
	interpretCmd.Flags().Int64Var(&dreamID, "dream", 0, "Dream ID to attach the interpretation to")
	_ = interpretCmd.MarkFlagRequired("description")
	rootCmd.AddCommand(interpretCmd)
}
