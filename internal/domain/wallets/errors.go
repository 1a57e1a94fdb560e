package wallets

import "errors"

// ErrWalletNotFound indicates the requested wallet does not exist.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrInsufficientBalance indicates the sender wallet cannot cover the
// requested amount.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrSelfTransfer indicates sender and recipient are the same wallet.
var ErrSelfTransfer = errors.New("cannot transfer to own wallet")

// ErrTransactionNotFound indicates no transaction exists for the given
// reference or id.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionAlreadyProcessed indicates the referenced transaction has
// already left the pending state.
var ErrTransactionAlreadyProcessed = errors.New("transaction already processed")

// ErrTransactionAlreadySuccessful indicates a success event arrived for a
// transaction that was already credited.
var ErrTransactionAlreadySuccessful = errors.New("transaction already successful")

// ErrTransactionAlreadyFailed indicates a failure event arrived for a
// transaction that was already marked failed.
var ErrTransactionAlreadyFailed = errors.New("transaction already failed")

// ErrDuplicateWalletNumber indicates a generated wallet number collided with
// an existing one.
var ErrDuplicateWalletNumber = errors.New("duplicate wallet number")

// ErrPaymentGatewayFailed indicates the payment gateway rejected or could
// not serve a request.
var ErrPaymentGatewayFailed = errors.New("payment gateway request failed")

// ErrWebhookExpired indicates the webhook event timestamp is outside the
// accepted replay window.
var ErrWebhookExpired = errors.New("webhook event expired")

// ErrMissingReference indicates the webhook payload carried no transaction
// reference.
var ErrMissingReference = errors.New("webhook event missing reference")
