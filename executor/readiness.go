package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// markReadiness runs after the wait primitive returns: it marks each
// handle's data_available (or, for actions, its per-sub-endpoint flags)
// from the wait-set result. Returns ErrUnknownKind — fatal to the round
// only — if an Initialized handle carries a kind this pass doesn't
// recognize.
func markReadiness(table *Table, result middleware.Result) error {
	for i := 0; i < table.Count(); i++ {
		h := table.At(i)
		switch h.Kind {
		case KindSubscription, KindSubscriptionWithContext:
			h.DataAvailable = boolAt(result.SubscriptionsReady, h.SlotIndex)
		case KindClient, KindClientWithRequestID:
			h.DataAvailable = boolAt(result.ClientsReady, h.SlotIndex)
		case KindService, KindServiceWithRequestID, KindServiceWithContext:
			h.DataAvailable = boolAt(result.ServicesReady, h.SlotIndex)
		case KindGuardCondition:
			h.DataAvailable = boolAt(result.GuardConditionsReady, h.SlotIndex)
		case KindTimer:
			h.DataAvailable = boolAt(result.TimersReady, h.SlotIndex)
		case KindActionClient:
			h.ActionClient.RefreshReady()
		case KindActionServer:
			h.ActionServer.RefreshReady()
		default:
			return ErrUnknownKind
		}
	}
	return nil
}

func boolAt(flags []bool, i int) bool {
	if i < 0 || i >= len(flags) {
		return false
	}
	return flags[i]
}
