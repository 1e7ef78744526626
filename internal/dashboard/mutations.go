package dashboard

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Veraticus/smart-finance/internal/common"
	"github.com/Veraticus/smart-finance/internal/model"
	"github.com/Veraticus/smart-finance/internal/ocr"
)

// NewTransactionDraft returns the manual entry defaults for the logged-in
// user: an expense dated now.
func (d *Dashboard) NewTransactionDraft() (model.TransactionDraft, error) {
	sess, err := d.currentSession()
	if err != nil {
		return model.TransactionDraft{}, err
	}
	return model.NewTransactionDraft(sess.UserID, d.now()), nil
}

// CreateTransaction validates and creates draft, then reloads. An invalid
// draft is rejected without a request.
func (d *Dashboard) CreateTransaction(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error) {
	sess, err := d.currentSession()
	if err != nil {
		return model.Transaction{}, err
	}

	created, err := d.createTransaction(ctx, sess, draft)
	if err != nil {
		return model.Transaction{}, err
	}
	d.reloadAfter(ctx, "create transaction", sess.UserID)
	return created, nil
}

func (d *Dashboard) createTransaction(ctx context.Context, sess model.Session, draft model.TransactionDraft) (model.Transaction, error) {
	if draft.UserID == 0 {
		draft.UserID = sess.UserID
	}
	if err := validateDraft(draft); err != nil {
		return model.Transaction{}, err
	}

	created, err := d.gateway.CreateTransaction(ctx, draft.Transaction())
	if err != nil {
		d.logger.Error("Failed to create transaction",
			"user_id", draft.UserID,
			"category_id", draft.CategoryID,
			"error", err)
		return model.Transaction{}, wrapWrite("create transaction", err)
	}
	d.logger.Info("Created transaction", "id", created.ID, "amount", draft.Amount.String(), "sign", draft.Sign)
	return created, nil
}

// DeleteTransaction deletes a transaction, drops it from the view model, and
// reloads.
func (d *Dashboard) DeleteTransaction(ctx context.Context, id string) error {
	sess, err := d.currentSession()
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.Invalid("id", "is required")
	}

	if err := d.gateway.DeleteTransaction(ctx, id); err != nil {
		d.logger.Error("Failed to delete transaction", "id", id, "error", err)
		return wrapWrite("delete transaction", err)
	}

	d.state.Update(func(vm ViewModel) ViewModel {
		vm.Transactions = removeTransaction(vm.Transactions, id)
		return vm
	})
	d.reloadAfter(ctx, "delete transaction", sess.UserID)
	return nil
}

// CreateGoal validates and creates goal for the logged-in user, then reloads.
// The type defaults to MONTHLY.
func (d *Dashboard) CreateGoal(ctx context.Context, goal model.Goal) (model.Goal, error) {
	sess, err := d.currentSession()
	if err != nil {
		return model.Goal{}, err
	}

	goal.UserID = sess.UserID
	if goal.Type == "" {
		goal.Type = model.GoalMonthly
	}
	if err := validateGoal(goal); err != nil {
		return model.Goal{}, err
	}

	created, err := d.gateway.CreateGoal(ctx, goal)
	if err != nil {
		d.logger.Error("Failed to create goal", "category_id", goal.CategoryID, "error", err)
		return model.Goal{}, wrapWrite("create goal", err)
	}
	d.logger.Info("Created goal", "id", created.ID, "type", goal.Type)

	d.reloadAfter(ctx, "create goal", sess.UserID)
	return created, nil
}

// DeleteGoal deletes a goal, drops it from the view model, and reloads.
func (d *Dashboard) DeleteGoal(ctx context.Context, id string) error {
	sess, err := d.currentSession()
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return common.Invalid("id", "is required")
	}

	if err := d.gateway.DeleteGoal(ctx, id); err != nil {
		d.logger.Error("Failed to delete goal", "id", id, "error", err)
		return wrapWrite("delete goal", err)
	}

	d.state.Update(func(vm ViewModel) ViewModel {
		vm.Goals = removeGoal(vm.Goals, id)
		return vm
	})
	d.reloadAfter(ctx, "delete goal", sess.UserID)
	return nil
}

// CommitScan turns the scan result into an expense against the loaded
// categories. On success the scan is cleared, the transactions view becomes
// active, and the dashboard is reloaded.
func (d *Dashboard) CommitScan(ctx context.Context, scan *ocr.Scan) (model.Transaction, error) {
	sess, err := d.currentSession()
	if err != nil {
		return model.Transaction{}, err
	}
	result, ok := scan.Result()
	if !ok {
		return model.Transaction{}, common.Invalid("scan", "has no result")
	}

	draft := ocr.Reconcile(result, d.Snapshot().Categories, sess.UserID, d.now)
	created, err := d.createTransaction(ctx, sess, draft)
	if err != nil {
		return model.Transaction{}, err
	}

	scan.Reset()
	d.reloadAfter(ctx, "commit scan", sess.UserID)
	d.SetView(ViewTransactions)
	return created, nil
}

// ImportStatement creates every draft under the category named or identified
// by category, then reloads once. It stops at the first failure and returns
// how many transactions were created. progress, if set, is called after each
// creation.
func (d *Dashboard) ImportStatement(ctx context.Context, drafts []model.TransactionDraft, category string, progress func()) (int, error) {
	sess, err := d.currentSession()
	if err != nil {
		return 0, err
	}

	target, ok := model.LookupCategory(d.Snapshot().Categories, category)
	if !ok {
		return 0, common.Invalid("category", fmt.Sprintf("%q is not a known category", category))
	}

	drafts = slices.Clone(drafts)
	for i := range drafts {
		drafts[i].UserID = sess.UserID
		drafts[i].CategoryID = target.ID
		if err := validateDraft(drafts[i]); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	created := 0
	for _, draft := range drafts {
		if _, err = d.createTransaction(ctx, sess, draft); err != nil {
			break
		}
		created++
		if progress != nil {
			progress()
		}
	}

	if created > 0 {
		d.reloadAfter(ctx, "import statement", sess.UserID)
	}
	d.logger.Info("Imported statement", "created", created, "total", len(drafts), "category", target.Name)
	return created, err
}

// ExportPDF streams the PDF report of the logged-in user to w.
func (d *Dashboard) ExportPDF(ctx context.Context, w io.Writer) (int64, error) {
	sess, err := d.currentSession()
	if err != nil {
		return 0, err
	}

	rc, err := d.gateway.ExportPDF(ctx, sess.UserID)
	if err != nil {
		d.logger.Error("Failed to export report", "user_id", sess.UserID, "error", err)
		return 0, wrapWrite("export", err)
	}
	defer func() { _ = rc.Close() }()

	n, err := io.Copy(w, rc)
	if err != nil {
		return n, fmt.Errorf("failed to write report: %w", err)
	}
	return n, nil
}
