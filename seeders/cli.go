package seeders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cert-system/internal/storage"
	"cert-system/pkg/config"
	"cert-system/pkg/filestorage"
	applogger "cert-system/pkg/logger"
	"cert-system/pkg/utils"
)

// RootOptions: общие флаги всех команд.
type RootOptions struct {
	Driver string
}

// NewRootCommand собирает CLI наполнения и обслуживания хранилища.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Наполнение и обслуживание хранилища cert-system",
	}
	cmd.PersistentFlags().StringVar(&opts.Driver, "driver", "", "хранилище (postgres|memory), по умолчанию STORAGE_DRIVER")

	cmd.AddCommand(newBootstrapCommand(opts))
	cmd.AddCommand(newPhaseTemplatesCommand(opts))
	cmd.AddCommand(newStatusCommand(opts))
	cmd.AddCommand(newClearCommand(opts))
	cmd.AddCommand(newTestDataCommand(opts))
	cmd.AddCommand(newHashPasswordCommand())
	return cmd
}

// withSeeder открывает хранилище, выполняет fn и закрывает соединения.
func withSeeder(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, s *Seeder) (interface{}, error)) error {
	cfg := config.New()
	if opts.Driver != "" {
		cfg.Storage.Driver = opts.Driver
	}
	logger := applogger.NewLogger(cfg.Log.Level, "")
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	files, err := filestorage.NewLocalFileStorage(filepath.Clean(cfg.Storage.UploadsDir))
	if err != nil {
		return err
	}

	result, err := fn(ctx, NewSeeder(backend.Store, backend.Cache, files, cfg.Documents.DateFormat, logger))
	if err != nil {
		logger.Error("❌ Команда завершилась с ошибкой", zap.String("command", cmd.Name()), zap.Error(err))
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newBootstrapCommand(opts *RootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:          "bootstrap",
		Short:        "Заполнить справочники начальными данными",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, opts, func(ctx context.Context, s *Seeder) (interface{}, error) {
				return s.Bootstrap(ctx, force)
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "создать данные, даже если справочники не пусты")
	return cmd
}

func newPhaseTemplatesCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "phase-templates",
		Short:        "Создать системные шаблоны этапов, если их нет",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, opts, func(ctx context.Context, s *Seeder) (interface{}, error) {
				created, err := s.PhaseTemplates(ctx)
				if err != nil {
					return nil, err
				}
				return map[string]int{"created": created}, nil
			})
		},
	}
}

func newStatusCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Показать число записей в коллекциях",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, opts, func(ctx context.Context, s *Seeder) (interface{}, error) {
				return s.Status(ctx)
			})
		},
	}
}

func newClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:          "clear <collection|all>",
		Short:        "Физически удалить записи коллекции",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("очистка %q необратима, подтвердите флагом --yes", args[0])
			}
			return withSeeder(cmd, opts, func(ctx context.Context, s *Seeder) (interface{}, error) {
				return s.Clear(ctx, args[0])
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "подтвердить удаление")
	return cmd
}

func newTestDataCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "test-data",
		Short:        "Создать тестовые сертификаты и поставки",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd, opts, func(ctx context.Context, s *Seeder) (interface{}, error) {
				return s.TestData(ctx)
			})
		},
	}
}

// newHashPasswordCommand печатает bcrypt-хеш для ADMIN_PASSWORD_HASH.
func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "hash-password <password>",
		Short:        "Получить значение ADMIN_PASSWORD_HASH",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
