// Package result defines the closed set of outcome codes returned by every
// ledger operation. A Code is also an error, so storage layers can return
// expected conditions such as "wallet not found" through the normal error
// channel and services can recover the code with Of.
package result

import "errors"

// Code is a stable numeric outcome identifier.
type Code int

const (
	Success                   Code = 0
	WalletNotFound            Code = 1
	WalletNotAccessible       Code = 2
	WalletLimitPerUserReached Code = 3
	RequiresAdminPrivileges   Code = 4
	NotEnoughBalance          Code = 5
	UserNotFound              Code = 6
	InvalidTransaction        Code = 7
	UnknownResultCode         Code = -666
	GeneralError              Code = -999
)

type descriptor struct {
	name    string
	message string
}

var descriptors = map[Code]descriptor{
	Success:                   {"SUCCESS", "Success"},
	WalletNotFound:            {"WALLET_NOT_FOUND", "Wallet not found"},
	WalletNotAccessible:       {"WALLET_NOT_ACCESSIBLE", "Wallet is not accessible"},
	WalletLimitPerUserReached: {"WALLET_LIMIT_PER_USER_REACHED", "Wallet limit per user reached"},
	RequiresAdminPrivileges:   {"REQUIRES_ADMIN_PRIVILEGES", "Requires admin privileges"},
	NotEnoughBalance:          {"NOT_ENOUGH_BALANCE", "Not enough balance"},
	UserNotFound:              {"USER_NOT_FOUND", "User not found"},
	InvalidTransaction:        {"INVALID_TRANSACTION", "Invalid transaction"},
	UnknownResultCode:         {"UNKNOWN_RESULT_CODE", "Result code is not defined"},
	GeneralError:              {"GENERAL_ERROR", "General error"},
}

// FromInt returns the code registered under n, or UnknownResultCode.
func FromInt(n int) Code {
	if _, ok := descriptors[Code(n)]; ok {
		return Code(n)
	}
	return UnknownResultCode
}

// MessageFor returns the message of the code registered under n.
func MessageFor(n int) string {
	return FromInt(n).Message()
}

// Of maps an error to a code. nil is Success, a wrapped Code is returned
// as-is and anything else is a GeneralError.
func Of(err error) Code {
	if err == nil {
		return Success
	}
	var code Code
	if errors.As(err, &code) {
		return code
	}
	return GeneralError
}

func (c Code) Int() int { return int(c) }

func (c Code) OK() bool { return c == Success }

func (c Code) Message() string {
	if d, ok := descriptors[c]; ok {
		return d.message
	}
	return descriptors[UnknownResultCode].message
}

func (c Code) String() string {
	if d, ok := descriptors[c]; ok {
		return d.name
	}
	return descriptors[UnknownResultCode].name
}

func (c Code) Error() string { return c.Message() }
