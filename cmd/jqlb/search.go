package main

import (
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bi0dread/jqlb"
)

func newSearchCmd() *cobra.Command {
	var (
		doc     documentOptions
		adapter adapterFlags
		dbPath  string
		user    string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a query document against a seeded sqlite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := doc.read(&jqlb.Config{Logger: cliLogger})
			if err != nil {
				return err
			}
			opts, err := adapter.options()
			if err != nil {
				return err
			}
			opts.Functions = sessionFunctions(user)

			db, err := openDB(dbPath)
			if err != nil {
				return errors.Wrapf(err, "open %s", dbPath)
			}
			trx, err := jqlb.ApplyGorm(db.Model(&Issue{}), q, opts)
			if err != nil {
				return err
			}
			var issues []Issue
			if err := trx.Find(&issues).Error; err != nil {
				return errors.Wrap(err, "search")
			}
			cliLogger.Info("search finished", slog.String("jql", jqlb.RenderJQL(q)), slog.Int("hits", len(issues)))

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, issue := range issues {
				if err := enc.Encode(issue); err != nil {
					return err
				}
			}
			return nil
		},
	}
	doc.bind(cmd)
	adapter.bind(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "issues.db", "sqlite database file")
	cmd.Flags().StringVar(&user, "user", "admin", "user returned by currentUser()")
	return cmd
}

// sessionFunctions evaluates the functions a sample database can answer.
func sessionFunctions(user string) jqlb.FunctionEvaluator {
	return jqlb.FunctionEvaluatorFunc(func(name string, args []string) ([]any, error) {
		switch name {
		case jqlb.FunctionCurrentUser:
			return []any{user}, nil
		case jqlb.FunctionStandardIssueTypes:
			return []any{"Bug", "Task", "Story", "Epic"}, nil
		case jqlb.FunctionSubtaskIssueTypes:
			return []any{"Sub-task"}, nil
		default:
			return nil, errors.Wrapf(jqlb.ErrUnsupportedClause, "function %s() is not available", name)
		}
	})
}
