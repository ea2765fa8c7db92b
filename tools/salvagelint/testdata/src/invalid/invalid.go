package invalid

import "github.com/deepankarm/jsonsalvage/pkg/salvage"

// ═══════════════════════════════════════════════════════════════════════════
// INVALID TEST CASES - dropped errors
// ═══════════════════════════════════════════════════════════════════════════

func blankError(text string) {
	res, _ := salvage.Recover(text) // want "error of salvage.Recover is discarded"
	_ = res
}

func assignedBlank(text string) {
	var res *salvage.Result
	res, _ = salvage.Recover(text, salvage.WithRepair()) // want "error of salvage.Recover is discarded"
	_ = res
}

func varSpec(text string) {
	var res, _ = salvage.Recover(text) // want "error of salvage.Recover is discarded"
	_ = res
}

func statement(text string) {
	salvage.Recover(text) // want "result and error of salvage.Recover is discarded"
}

func goroutine(text string) {
	go salvage.Recover(text) // want "result and error of salvage.Recover is discarded"
}

func stream(s *salvage.Stream, chunk []byte) {
	res, _ := s.Feed(chunk) // want "error of Stream.Feed is discarded"
	_ = res
	s.Feed(chunk) // want "result and error of Stream.Feed is discarded"
}
