package executor

import "github.com/team-rocos/rclgo-executor/middleware"

// takeHandle pulls pending data for a single handle into its buffer. It
// is called for every ready handle by both schedulers: the Default
// scheduler calls it immediately before that handle's Execute; the LET
// scheduler calls it for every handle in one pass before any Execute
// runs.
func takeHandle(h *Handle) error {
	switch h.Kind {
	case KindSubscription, KindSubscriptionWithContext:
		if !h.DataAvailable {
			return nil
		}
		sub, ok := h.Target.(middleware.Subscription)
		if !ok {
			return ErrUnknownKind
		}
		res, err := sub.Take(h.DataBuffer)
		if err != nil {
			return err
		}
		if res != middleware.TakeOK {
			h.DataAvailable = false
		}
		return nil

	case KindTimer:
		return nil

	case KindService, KindServiceWithRequestID, KindServiceWithContext:
		if !h.DataAvailable {
			return nil
		}
		svc, ok := h.Target.(middleware.Service)
		if !ok {
			return ErrUnknownKind
		}
		res, id, err := svc.TakeRequest(h.DataBuffer)
		if err != nil {
			return err
		}
		if res != middleware.TakeOK {
			h.DataAvailable = false
			return nil
		}
		h.RequestID = id
		return nil

	case KindClient, KindClientWithRequestID:
		if !h.DataAvailable {
			return nil
		}
		cli, ok := h.Target.(middleware.Client)
		if !ok {
			return ErrUnknownKind
		}
		res, id, err := cli.TakeResponse(h.DataBuffer)
		if err != nil {
			return err
		}
		if res != middleware.TakeOK {
			h.DataAvailable = false
			return nil
		}
		h.RequestID = id
		return nil

	case KindGuardCondition:
		return nil

	case KindActionClient:
		return h.ActionClient.Take()

	case KindActionServer:
		return h.ActionServer.Take()

	default:
		return ErrUnknownKind
	}
}
