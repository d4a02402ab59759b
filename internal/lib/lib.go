// Package lib holds infrastructure that does not fit strictly into the
// handler, service or repository layers: background job processing on
// Redis/asynq (lib/job) and the Resend e-mail client (lib/email).
package lib
