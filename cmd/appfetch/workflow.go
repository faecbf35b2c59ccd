package main

import (
	"context"
	"fmt"

	"github.com/appfetch/appfetch/internal/catalog"
	"github.com/appfetch/appfetch/internal/install"
	"github.com/appfetch/appfetch/internal/source"
	"github.com/appfetch/appfetch/pkg/logging"
	"github.com/appfetch/appfetch/pkg/update"
)

// runWorkflow resolves the latest release for one app, decides against the
// installed version, and installs when the decision says to proceed.
func runWorkflow(ctx context.Context, inst *install.Installer, app *catalog.App, dryRun bool) error {
	log := logging.GetLogger("update")

	src, err := source.ForApp(app)
	if err != nil {
		return err
	}
	rel, err := src.Resolve(ctx)
	if err != nil {
		return fmt.Errorf("%s: resolve latest release: %w", app.ID, err)
	}

	installed := inst.InstalledVersion(app.ID)
	decision, msg := update.Decide(rel.Version, installed)

	if dryRun {
		fmt.Printf("%s: %s\n", app.ID, update.DescribeDecision(decision))
		return nil
	}

	switch decision {
	case update.DecisionSkip:
		fmt.Printf("%s: %s\n", app.ID, msg)
		return nil
	case update.DecisionDowngrade:
		log.Warn().Str("app", app.ID).Str("candidate", rel.Version).
			Str("installed", installed).Msg(msg)
		return nil
	default:
		fmt.Printf("%s: %s\n", app.ID, msg)
		return inst.Install(ctx, app, rel)
	}
}

// resolveApps maps ids to catalog entries; with no ids, every catalog app.
func resolveApps(ids []string) ([]*catalog.App, error) {
	if len(ids) == 0 {
		all, err := catalog.Apps()
		if err != nil {
			return nil, err
		}
		apps := make([]*catalog.App, len(all))
		for i := range all {
			apps[i] = &all[i]
		}
		return apps, nil
	}

	apps := make([]*catalog.App, 0, len(ids))
	for _, id := range ids {
		app, err := catalog.Lookup(id)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}
