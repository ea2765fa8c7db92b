package valid

import (
	"errors"
	"fmt"

	"github.com/deepankarm/jsonsalvage/pkg/salvage"
)

// Minimal valid cases - just enough to verify no false positives.

func handled(text string) error {
	res, err := salvage.Recover(text)
	if err != nil {
		return err
	}
	fmt.Println(res.Warnings)
	return nil
}

func matched(text string) bool {
	_, err := salvage.Recover(text, salvage.WithMaxLength(1024))
	return errors.Is(err, salvage.ErrSizeLimitExceeded)
}

func streamed(chunks []string) error {
	s := salvage.NewStream()
	for _, chunk := range chunks {
		if _, err := s.Feed([]byte(chunk)); err != nil {
			return err
		}
	}
	return nil
}

// Other functions from the package are not checked.
func other(text string) {
	salvage.ExtractLargestFragment(text)
	v, _ := salvage.ExtractLargestFragment(text)
	_ = v
}

// nolint:salvagelint
func suppressed(text string) {
	res, _ := salvage.Recover(text)
	_ = res
}
