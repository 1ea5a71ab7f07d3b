package queries

import (
	_ "embed"
)

var (
	//go:embed migrate_builds.sql
	MigrateBuilds string
	//go:embed migrate_workflow_runs.sql
	MigrateWorkflowRuns string
	//go:embed migrate_test_results.sql
	MigrateTestResults string
	//go:embed migrate_build_sync_status.sql
	MigrateBuildSyncStatus string
	//go:embed migrate_access_tokens.sql
	MigrateAccessTokens string
)
