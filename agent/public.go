package agent

import (
	"context"
	"fmt"
	"strings"

	"billfold"
	"billfold/docs"
	"billfold/renderer"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his money: balances, spending by category,
			transfers between wallets, and the interest his deposits earn.

			Devise a plan of questions to ask each expert and come up with the best response
			to the user's request. The user assumes you know his wallets by name, check the
			ledger first to learn what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper returns the expert in charge of the user's ledger.
// load reads the ledger fresh on every tool call, so answers follow
// edits made while the session is open.
func NewBookkeeper(load func() (*billfold.Manager, error)) *Expert {
	lib := walletFunctions(load)

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's wallet ledger.
		He can list wallets, summarize one, list its transactions, break spending down by
		category and value term deposits.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's wallet ledger.
				You know how to use the Tools to extract relevant information about the
				user's wallets, transactions and deposits. You are part of a team of
				experts, yours is everything recorded in the ledger. Pardon their
				approximative language and figure out which wallet they meant.

				Use the available tools to get information about
				  - the list of wallets and their balances
				  - one wallet's totals and category breakdown
				  - the transactions of a wallet
				  - the interest state of a deposit wallet
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func errorResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func outputResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// walletArg resolves the optional "wallet" argument, defaulting to the
// current wallet.
func walletArg(m *billfold.Manager, args map[string]any) (*billfold.Wallet, error) {
	iname, has := args["wallet"]
	if !has {
		if w := m.Current(); w != nil {
			return w, nil
		}
		return nil, fmt.Errorf("the ledger has no wallets yet")
	}
	name, ok := iname.(string)
	if !ok {
		return nil, fmt.Errorf("argument 'wallet' is not a string as expected but %T", iname)
	}
	w, ok := m.Wallet(name)
	if !ok {
		names := make([]string, 0, m.Len())
		for _, x := range m.Wallets() {
			names = append(names, x.Name())
		}
		return nil, fmt.Errorf("no wallet named %q, the ledger has: %s", name, strings.Join(names, ", "))
	}
	return w, nil
}

// dateArg resolves the optional "date" argument, defaulting to today.
func dateArg(args map[string]any) (billfold.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return billfold.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return billfold.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := billfold.ParseDate(sdate)
	if err != nil {
		return billfold.Today(), fmt.Errorf("argument 'date' must be a valid date got %q. Below is the doc about the date format\n\n%s ", sdate, must(docs.GetTopic("dates")))
	}
	return date, nil
}

// walletProperty is the shared schema of the optional wallet argument.
func walletProperty() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: "The wallet name. The current wallet is the default.",
	}
}

// walletFunctions builds the Bookkeeper's tools over the ledger loader.
func walletFunctions(load func() (*billfold.Manager, error)) []Function {
	wallets := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Wallets",
			Description: "Wallets lists every wallet with its balance, currency and transaction count. The current wallet is marked with a star.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all wallets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			m, err := load()
			if err != nil {
				return errorResponse(id, "Wallets", err)
			}
			return outputResponse(id, "Wallets", renderer.WalletsMarkdown(renderer.NewWalletListing(m)))
		},
	}

	summary := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "WalletSummary",
			Description: "WalletSummary reports one wallet in full: balance, income and expense totals, category breakdowns and the transaction list.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"wallet": walletProperty(),
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted wallet dashboard.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			m, err := load()
			if err != nil {
				return errorResponse(id, "WalletSummary", err)
			}
			w, err := walletArg(m, args)
			if err != nil {
				return errorResponse(id, "WalletSummary", err)
			}
			md := renderer.RenderWalletSummary(renderer.NewWalletSummary(w), renderer.SummaryRenderOptions{})
			return outputResponse(id, "WalletSummary", md)
		},
	}

	transactions := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Transactions",
			Description: "Transactions lists the transactions of one wallet: position, date, category, signed amount, description and id.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"wallet": walletProperty(),
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the wallet's transactions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			m, err := load()
			if err != nil {
				return errorResponse(id, "Transactions", err)
			}
			w, err := walletArg(m, args)
			if err != nil {
				return errorResponse(id, "Transactions", err)
			}
			return outputResponse(id, "Transactions", renderer.TransactionsMarkdown(renderer.NewTransactionListing(w)))
		},
	}

	breakdown := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Breakdown",
			Description: "Breakdown reports the per-category totals of one wallet and their share of its income or expense.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"wallet": walletProperty(),
					"direction": {
						Type:        genai.TypeString,
						Description: "Either \"income\" or \"expense\". Expense is the default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted category breakdown table.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			m, err := load()
			if err != nil {
				return errorResponse(id, "Breakdown", err)
			}
			w, err := walletArg(m, args)
			if err != nil {
				return errorResponse(id, "Breakdown", err)
			}
			dir := billfold.Expense
			if idir, has := args["direction"]; has {
				sdir, ok := idir.(string)
				if !ok {
					return errorResponse(id, "Breakdown", fmt.Errorf("argument 'direction' is not a string as expected but %T", idir))
				}
				if dir, err = billfold.ParseDirection(sdir); err != nil {
					return errorResponse(id, "Breakdown", err)
				}
			}
			return outputResponse(id, "Breakdown", renderer.BreakdownMarkdown(w, dir))
		},
	}

	deposit := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Deposit",
			Description: "Deposit reports the interest state of a deposit wallet on a date: terms, accrued interest and the projected value at maturity.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"wallet": walletProperty(),
					"date": {
						Type: genai.TypeString,
						Description: `The date on which to value the deposit. Today is the default.
						Otherwise it uses a flexible date format based on YYYY-MM-DD:

						` + must(docs.GetTopic("dates")),
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted deposit report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			m, err := load()
			if err != nil {
				return errorResponse(id, "Deposit", err)
			}
			w, err := walletArg(m, args)
			if err != nil {
				return errorResponse(id, "Deposit", err)
			}
			asOf, err := dateArg(args)
			if err != nil {
				return errorResponse(id, "Deposit", err)
			}
			s, err := w.DepositSummary(asOf)
			if err != nil {
				return errorResponse(id, "Deposit", err)
			}
			return outputResponse(id, "Deposit", renderer.RenderDeposit(renderer.NewDeposit(s)))
		},
	}

	return []Function{wallets, summary, transactions, breakdown, deposit}
}
