package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sstone1/concerto/fixtures"
	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/storage/kv/leveldbkv"
	"github.com/sstone1/concerto/storage/rootstore"
)

// A commitCommand salts the demonstration Party record, computes its
// Merkle root, and persists the commitment under a record ID.
type commitCommand struct{}

var _ cobraCommand = (*commitCommand)(nil)

// NewCommitCommand constructs the "commit" subcommand.
func NewCommitCommand() *cobra.Command {
	return (&commitCommand{}).Build()
}

func (commitCmd *commitCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "commit [record-id]",
		Short: "Salt the demonstration record and commit its Merkle root.",
		Long: `Commit salts the demonstration Party record on first use, computes
its Merkle root, and stores the root in the root store under the given
record ID. The salted values and salts are kept in a local vault file so
a later "disclose" for the same record ID discloses against the same
commitment.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommit,
	}
	addConfigFlags(&cmd)
	return &cmd
}

func runCommit(cmd *cobra.Command, args []string) error {
	conf, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	vaultDir, _ := cmd.Flags().GetString("vault-dir")
	recordID := args[0]

	reg := fixtures.Registry()
	party, err := loadOrSaltParty(reg, vaultDir, recordID)
	if err != nil {
		logger.Error("failed to load or salt record", "recordID", recordID, "err", err)
		return err
	}

	root, err := merkle.Root(reg, party)
	if err != nil {
		logger.Error("failed to compute root", "recordID", recordID, "err", err)
		return fmt.Errorf("root: %w", err)
	}

	db := leveldbkv.OpenDB(conf.RootStorePath)
	defer db.Close()
	store := rootstore.New(db)
	if err := store.Put(recordID, root); err != nil {
		logger.Error("failed to persist commitment", "recordID", recordID, "err", err)
		return fmt.Errorf("commit: %w", err)
	}

	logger.Info("committed record", "recordID", recordID, "root", fmt.Sprintf("%x", root))
	fmt.Printf("committed %s -> %x\n", recordID, root)
	return nil
}
