package steps

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// CheckoutInput configures the checkout step. Both arguments default to the
// values carried by the triggering event.
type CheckoutInput struct {
	Repo     string `flow:"repo,optional"`
	Revision string `flow:"revision,optional"`
}

// runCheckout materializes repository content at the triggering revision
// into the entry's empty workspace. Any failure here is an infrastructure
// failure: nothing later in the job can run without a checkout.
func runCheckout(ctx context.Context, job *JobContext, input any) error {
	in := input.(*CheckoutInput)
	logger := ctxlog.FromContext(ctx)

	repo := in.Repo
	if repo == "" {
		repo = job.Repo
	}
	revision := in.Revision
	if revision == "" {
		revision = job.Revision
	}
	if repo == "" {
		return failf(FailureInfra, "checkout: no repository configured")
	}

	logger.Debug("Cloning repository into workspace.", "repo", repo, "revision", revision)
	if out, err := runCommand(ctx, job, "git", "clone", "--quiet", "--", repo, "."); err != nil {
		return failf(FailureInfra, "checkout: clone of %s failed: %v\n%s", repo, err, outputTail(out))
	}

	if revision != "" {
		if out, err := runCommand(ctx, job, "git", "checkout", "--quiet", revision); err != nil {
			return failf(FailureInfra, "checkout: revision %s not found: %v\n%s", revision, err, outputTail(out))
		}
	}

	logger.Debug("Checkout complete.", "workspace", job.Workspace)
	return nil
}
