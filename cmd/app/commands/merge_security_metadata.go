package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/allisson/delegations/internal/delegation/domain"
)

// Merge modes accepted by RunMergeSecurityMetadata.
const (
	MergeModeVersions  = "versions"
	MergeModeDuplicate = "duplicate"
)

// RunMergeSecurityMetadata merges the metadata stored in otherPath into the one stored in
// thisPath and writes the result as JSON. Both documents are validated on load.
func RunMergeSecurityMetadata(logger *slog.Logger, writer io.Writer, thisPath, otherPath, mode string) error {
	if mode != MergeModeVersions && mode != MergeModeDuplicate {
		return fmt.Errorf("invalid merge mode: %s (valid options: versions, duplicate)", mode)
	}

	this, err := readSecurityMetadata(thisPath)
	if err != nil {
		return err
	}
	other, err := readSecurityMetadata(otherPath)
	if err != nil {
		return err
	}

	var merged domain.SecurityMetadata
	if mode == MergeModeVersions {
		merged, err = this.MergeForDifferentVersionsOfEntity(other)
	} else {
		merged, err = this.MergeForDuplicatedEntityIntoThisFrom(other)
	}
	if err != nil {
		return fmt.Errorf("failed to merge security metadata: %w", err)
	}

	logger.Info("security metadata merged",
		slog.String("mode", mode),
		slog.Int("this_delegations", this.Len()),
		slog.Int("other_delegations", other.Len()),
		slog.Int("merged_delegations", merged.Len()),
	)

	return writeJSON(writer, merged)
}

func readSecurityMetadata(path string) (domain.SecurityMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.SecurityMetadata{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var metadata domain.SecurityMetadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return domain.SecurityMetadata{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return metadata, nil
}
