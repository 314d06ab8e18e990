package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// shouldFire decides whether a handle's callback runs this round: either
// Invocation is Always, or it's OnNewData and the handle's consolidated
// readiness predicate is true.
func shouldFire(h *Handle) bool {
	return h.Invocation == Always || h.consolidatedReady()
}

// executeHandle dispatches one handle's callback according to its kind,
// once shouldFire has cleared it to run this round.
func executeHandle(h *Handle) error {
	if !shouldFire(h) {
		return nil
	}

	switch h.Kind {
	case KindSubscription:
		if h.DataAvailable {
			callVariadic(h.Callback, h.DataBuffer)
		} else {
			callVariadic(h.Callback, nil)
		}
		return nil

	case KindSubscriptionWithContext:
		if h.DataAvailable {
			callVariadic(h.Callback, h.DataBuffer, h.UserContext)
		} else {
			callVariadic(h.Callback, nil, h.UserContext)
		}
		return nil

	case KindTimer:
		timer, ok := h.Target.(middleware.Timer)
		if !ok {
			return ErrUnknownKind
		}
		err := timer.Call()
		if err == middleware.ErrTimerCanceled {
			return nil
		}
		return err

	case KindService:
		callVariadic(h.Callback, h.DataBuffer, h.ResponseBuffer)
		return sendServiceResponse(h)

	case KindServiceWithRequestID:
		callVariadic(h.Callback, h.DataBuffer, h.RequestID, h.ResponseBuffer)
		return sendServiceResponse(h)

	case KindServiceWithContext:
		callVariadic(h.Callback, h.DataBuffer, h.ResponseBuffer, h.UserContext)
		return sendServiceResponse(h)

	case KindClient:
		callVariadic(h.Callback, h.DataBuffer)
		return nil

	case KindClientWithRequestID:
		callVariadic(h.Callback, h.DataBuffer, h.RequestID)
		return nil

	case KindGuardCondition:
		callVariadic(h.Callback)
		return nil

	case KindActionClient:
		h.ActionClient.Execute()
		return nil

	case KindActionServer:
		return h.ActionServer.Execute()

	default:
		return ErrUnknownKind
	}
}

func sendServiceResponse(h *Handle) error {
	svc, ok := h.Target.(middleware.Service)
	if !ok {
		return ErrUnknownKind
	}
	return svc.SendResponse(h.RequestID, h.ResponseBuffer)
}
