package cli

import (
	"log/slog"

	"github.com/limbo/stepdiary/internal/repository"
	"github.com/limbo/stepdiary/internal/service"
	"github.com/limbo/stepdiary/internal/store"
	"github.com/limbo/stepdiary/pkg/cleanup"
	"github.com/limbo/stepdiary/pkg/config"
	"github.com/limbo/stepdiary/pkg/notifier"
	"github.com/spf13/cobra"
)

// NewRootCmd wires the record store, repositories and services, then
// hands the terminal over to the interactive session.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:          "stepdiary",
		Short:        "Local multi-user daily step tracker",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				dataPath = cfg.GetStringOr("STEPDIARY_DATA", "stepdiary.db")
			}
			st, err := store.NewSQLiteStore(dataPath)
			if err != nil {
				return err
			}
			cleanup.Register(&cleanup.Job{
				Name: "closing record store",
				F:    st.Close,
			})
			defer cleanup.CleanUp()

			dirRepo := repository.NewDirectoryRepo(st)
			logRepo := repository.NewStepLogRepo(st)
			userService := service.NewUserService(&service.UserServiceOptions{
				DirectoryRepo:       dirRepo,
				StepLogRepo:         logRepo,
				Notifier:            notifier.NewLogNotifier(slog.Default()),
				RequireVerification: cfg.GetBool("STEPDIARY_REQUIRE_VERIFICATION"),
				AdminCredential:     cfg.GetStringOr("STEPDIARY_ADMIN_PASSWORD", "admin"),
			})
			app := NewApp(&AppOptions{
				UserService:    userService,
				StepLogService: service.NewStepLogService(logRepo),
				AdminService:   service.NewAdminService(dirRepo, logRepo),
				In:             cmd.InOrStdin(),
				Out:            cmd.OutOrStdout(),
			})
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "path to the local database file")
	return cmd
}
