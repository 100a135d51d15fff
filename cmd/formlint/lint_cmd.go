package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldware/sitecheck/modules/checklists/domain/form"
	"github.com/fieldware/sitecheck/modules/checklists/forms"
)

type finding struct {
	Form    string `json:"form"`
	Subject string `json:"subject,omitempty"`
	Problem string `json:"problem"`
}

func newLintCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report duplicate keys, empty labels and malformed choice lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			findings := lintRegistry(forms.All())
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(findings); err != nil {
					return err
				}
			} else {
				for _, f := range findings {
					fmt.Printf("%s: %s: %s\n", f.Form, f.Subject, f.Problem)
				}
			}
			if len(findings) > 0 {
				return fmt.Errorf("%d problem(s) found", len(findings))
			}
			fmt.Printf("%d forms OK\n", len(forms.All()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit findings as JSON")
	return cmd
}

func lintRegistry(defs []form.Definition) []finding {
	var findings []finding
	report := func(form, subject, problem string) {
		findings = append(findings, finding{Form: form, Subject: subject, Problem: problem})
	}

	seenCodes := map[string]bool{}
	for _, def := range defs {
		if seenCodes[def.Code] {
			report(def.Code, "", "duplicate form code")
		}
		seenCodes[def.Code] = true

		if def.Title == "" {
			report(def.Code, "", "empty title")
		}
		if def.Endpoint == "" {
			report(def.Code, "", "empty backend endpoint")
		}
		if def.ListPath == "" {
			report(def.Code, "", "empty list path")
		}
		if def.WitnessCount != 0 && def.WitnessCount != 3 {
			report(def.Code, "", fmt.Sprintf("witness count must be 0 or 3, got %d", def.WitnessCount))
		}

		seenCategories := map[string]bool{}
		for _, category := range def.Schema {
			if seenCategories[category.Key] {
				report(def.Code, category.Key, "duplicate category key")
			}
			seenCategories[category.Key] = true
			if len(category.Items) == 0 {
				report(def.Code, category.Key, "category has no items")
			}

			seenItems := map[string]bool{}
			for _, item := range category.Items {
				subject := category.Key + "." + item.Key
				if seenItems[item.Key] {
					report(def.Code, subject, "duplicate item key")
				}
				seenItems[item.Key] = true
				if item.Schema.Label == "" {
					report(def.Code, subject, "empty label")
				}
				if len(item.Schema.Choices) == 0 {
					report(def.Code, subject, "empty choice list")
				}
			}
		}
	}
	return findings
}
