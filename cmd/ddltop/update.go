package main

import (
	"context"
	"fmt"

	"github.com/wcpan/ddltop/internal/ui/panels"
	"github.com/wcpan/ddltop/internal/update"
)

func runUpdate(repo string) error {
	fmt.Printf("Current version: %s\n", panels.Version)

	rel, err := update.Apply(context.Background(), panels.Version, repo)
	if err != nil {
		return err
	}
	if rel == nil {
		fmt.Println("Already up to date.")
		return nil
	}
	fmt.Printf("Updated to v%s.\n", rel.Version)
	if rel.URL != "" {
		fmt.Printf("Release notes: %s\n", rel.URL)
	}
	return nil
}
