package service

import "context"

// TaskRunner runs a task detached from the request that scheduled it.
// The OTP flows use it to dispatch email/SMS after the response is sent:
// the caller gets no completion signal and failures are logged only.
type TaskRunner interface {
	// Go schedules the task. The context passed to the task is detached
	// from the request context so the task survives the response.
	Go(ctx context.Context, task func(ctx context.Context))
}
