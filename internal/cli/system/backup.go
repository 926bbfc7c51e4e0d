package system

import (
	"fmt"

	"github.com/julianstephens/plantpal/internal/backup"
	"github.com/julianstephens/plantpal/internal/cli"
	"github.com/julianstephens/plantpal/internal/storage/sqlite"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, backup.ErrNotSQLite
	}
	return backup.NewManager(store.GetConfigPath()), nil
}

type BackupCreateCmd struct {
	Keep int `help:"Number of backups to keep." default:"14"`
}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.WithKeep(c.Keep).Create()
	if err != nil {
		return err
	}
	fmt.Printf("✓ Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found in %s\n", mgr.Dir())
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %8.1f KB  %s\n", b.Created.Local().Format("2006-01-02 15:04:05"), float64(b.Size)/1024, b.Path)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	// Release the database file before replacing it
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	safety, err := mgr.Restore(c.Path)
	if err != nil {
		return err
	}
	if safety != "" {
		fmt.Printf("Previous database saved to: %s\n", safety)
	}
	fmt.Println("✓ Database restored")
	return nil
}
