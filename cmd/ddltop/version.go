package main

import (
	"context"
	"fmt"

	"github.com/wcpan/ddltop/internal/ui/panels"
	"github.com/wcpan/ddltop/internal/update"
)

func runVersion(repo string) {
	fmt.Printf("ddltop version %s\n", panels.Version)

	if update.IsDevBuild(panels.Version) {
		fmt.Println("Development build, update check skipped.")
		return
	}

	rel, err := update.CheckForUpdate(context.Background(), panels.Version, repo)
	if err != nil {
		fmt.Printf("Update check failed: %v\n", err)
		return
	}

	if rel != nil {
		fmt.Printf("Update available: v%s. Run \"ddltop update\" to install.\n", rel.Version)
	} else {
		fmt.Println("You are up to date.")
	}
}
