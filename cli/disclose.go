package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sstone1/concerto/fixtures"
	"github.com/sstone1/concerto/merkle"
	"github.com/sstone1/concerto/wire"
)

// A discloseCommand produces a selective disclosure proof for one
// path of the demonstration record previously committed by "commit".
type discloseCommand struct{}

var _ cobraCommand = (*discloseCommand)(nil)

// NewDiscloseCommand constructs the "disclose" subcommand.
func NewDiscloseCommand() *cobra.Command {
	return (&discloseCommand{}).Build()
}

func (discloseCmd *discloseCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:   "disclose [record-id] [dotted-path]",
		Short: "Produce a selective disclosure proof for one field.",
		Long: `Disclose produces a proof that discloses the value of one field of
the previously committed demonstration record, for example
"address.street", without revealing any other field. Run "commit"
first so the record's vault exists.`,
		Args: cobra.ExactArgs(2),
		RunE: runDisclose,
	}
	addConfigFlags(&cmd)
	return &cmd
}

func runDisclose(cmd *cobra.Command, args []string) error {
	_, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	vaultDir, _ := cmd.Flags().GetString("vault-dir")
	recordID, dottedPath := args[0], args[1]
	path := strings.Split(dottedPath, ".")

	reg := fixtures.Registry()
	party, err := loadOrSaltParty(reg, vaultDir, recordID)
	if err != nil {
		logger.Error("failed to load or salt record", "recordID", recordID, "err", err)
		return err
	}

	proof, err := merkle.Proof(reg, party, path)
	if err != nil {
		logger.Error("failed to build disclosure proof", "recordID", recordID, "path", dottedPath, "err", err)
		return fmt.Errorf("disclose: %w", err)
	}

	data, err := wire.MarshalEnvelope(&wire.Envelope{
		ClassName: fixtures.PartyClassName,
		Path:      path,
		Proof:     proof,
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	logger.Info("disclosed field", "recordID", recordID, "path", dottedPath)
	fmt.Println(string(data))
	return nil
}
