package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sstone1/concerto/fixtures"
	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/storage/kv/leveldbkv"
	"github.com/sstone1/concerto/storage/rootstore"
	"github.com/sstone1/concerto/wire"
)

// A verifyCommand checks a disclosure envelope, read from stdin,
// against the root previously committed for a record ID.
type verifyCommand struct{}

var _ cobraCommand = (*verifyCommand)(nil)

// NewVerifyCommand constructs the "verify" subcommand.
func NewVerifyCommand() *cobra.Command {
	return (&verifyCommand{}).Build()
}

func (verifyCmd *verifyCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "verify [record-id]",
		Short: "Verify a disclosure envelope against a committed root.",
		Long: `Verify reads a disclosure envelope (as produced by "disclose") from
stdin, looks up the root committed for the given record ID, and
reports whether the envelope discloses a genuine leaf of that root.
The original record is never consulted.`,
		Args: cobra.ExactArgs(1),
		RunE: runVerify,
	}
	addConfigFlags(&cmd)
	return &cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	conf, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	recordID := args[0]

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read envelope: %w", err)
	}
	env, err := wire.UnmarshalEnvelope(data)
	if err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}

	db := leveldbkv.OpenDB(conf.RootStorePath)
	defer db.Close()
	store := rootstore.New(db)
	root, err := store.Get(recordID)
	if err != nil {
		logger.Error("failed to look up committed root", "recordID", recordID, "err", err)
		return fmt.Errorf("lookup root: %w", err)
	}

	reg := fixtures.Registry()
	ok, err := merkle.Verify(reg, env.ClassName, env.Path, hex.EncodeToString(root), env.Proof)
	if err != nil {
		logger.Error("verification errored", "recordID", recordID, "err", err)
		return fmt.Errorf("verify: %w", err)
	}
	if ok {
		logger.Info("disclosure verified", "recordID", recordID)
		fmt.Println("OK: disclosure verifies against the committed root")
		return nil
	}
	logger.Warn("disclosure failed verification", "recordID", recordID)
	fmt.Println("FAIL: disclosure does not match the committed root")
	os.Exit(1)
	return nil
}
