package runtime

import (
	"slices"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// DefaultOrder is the fixed progression of a session.
var DefaultOrder = []domain.StageID{
	domain.StageMarketing,
	domain.StageWildCustomer,
	domain.StageSales,
	domain.StageMerch,
	domain.StageITHub,
	domain.StageWarehouse,
	domain.StageCelebration,
}

// NextStage returns the successor of current in order. The title (or any id not in
// the order) is followed by the first stage; the last stage has no successor.
func NextStage(order []domain.StageID, current domain.StageID) (domain.StageID, bool) {
	idx := slices.Index(order, current)
	if idx+1 >= len(order) {
		return "", false
	}
	return order[idx+1], true
}
