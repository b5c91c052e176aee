package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/boddenberg/tochka-go/internal/domain"
	"github.com/boddenberg/tochka-go/internal/infra/resilience"
)

func accountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts [account-id]",
		Short: "List accounts or show one account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.Account], error) {
					return a.client.GetAccountInfo(ctx, args[0])
				})
			}
			return read(cmd.Context(), a, a.client.GetAccountsList)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "card-transactions <account-id>",
		Short: "List authorized card transactions of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.TransactionPageData], error) {
				return a.client.GetAuthorizedCardTransactions(ctx, args[0])
			})
		},
	})
	return cmd
}

func balancesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balances [account-id]",
		Short: "List balances or show the balance of one account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.BalancePageData], error) {
					return a.client.GetBalanceInfo(ctx, args[0])
				})
			}
			return read(cmd.Context(), a, a.client.GetBalancesList)
		},
	}
}

func customersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "customers [customer-code]",
		Short: "List customers or show one customer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.Customer], error) {
					return a.client.GetCustomerInfo(ctx, args[0])
				})
			}
			return read(cmd.Context(), a, a.client.GetCustomersList)
		},
	}
}

// summary is the accounts, balances and customers of the token holder.
type summary struct {
	Accounts  []domain.Account  `json:"accounts"`
	Balances  []domain.Balance  `json:"balances"`
	Customers []domain.Customer `json:"customers"`
}

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Fetch accounts, balances and customers concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd.Context(), a, func(ctx context.Context) (summary, error) {
				var out summary
				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error {
					resp, err := a.client.GetAccountsList(gctx)
					if err == nil {
						out.Accounts = resp.Data.Account
					}
					return err
				})
				g.Go(func() error {
					resp, err := a.client.GetBalancesList(gctx)
					if err == nil {
						out.Balances = resp.Data.Balance
					}
					return err
				})
				g.Go(func() error {
					resp, err := a.client.GetCustomersList(gctx)
					if err == nil {
						out.Customers = resp.Data.Customer
					}
					return err
				})
				return out, g.Wait()
			})
		},
	}
}

func paymentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Internet acquiring payment operations",
	}

	var (
		customerCode string
		fromDate     string
		toDate       string
		status       string
		page         int
		perPage      int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List payment operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := domain.NewPaymentListQuery(customerCode)
			query.Page, query.PerPage = page, perPage
			var err error
			if query.FromDate, err = optionalDate(fromDate); err != nil {
				return err
			}
			if query.ToDate, err = optionalDate(toDate); err != nil {
				return err
			}
			if status != "" {
				if query.Status, err = domain.ParsePaymentStatus(status); err != nil {
					return err
				}
			}
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.PaginatedResponse[domain.PaymentPageData], error) {
				return a.client.PaymentOperationList(ctx, query)
			})
		},
	}
	list.Flags().StringVar(&customerCode, "customer-code", "", "customer code (resolved from accounts when empty)")
	list.Flags().StringVar(&fromDate, "from", "", "first day, YYYY-MM-DD")
	list.Flags().StringVar(&toDate, "to", "", "last day, YYYY-MM-DD")
	list.Flags().StringVar(&status, "status", "", "operation status, e.g. APPROVED")
	list.Flags().IntVar(&page, "page", 0, "page number")
	list.Flags().IntVar(&perPage, "per-page", 0, "operations per page")

	var (
		amount      float64
		purpose     string
		redirectURL string
		modes       []string
		ttl         int
		withReceipt bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a payment link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload := domain.NewCreatePaymentPayload(amount, customerCode, purpose)
			if redirectURL != "" {
				payload.RedirectURL = &redirectURL
			}
			if ttl > 0 {
				payload.TTL = &ttl
			}
			for _, m := range modes {
				mode, err := domain.ParsePaymentMode(m)
				if err != nil {
					return err
				}
				payload.PaymentMode = append(payload.PaymentMode, mode)
			}
			path := domain.PaymentPathPayments
			if withReceipt {
				path = domain.PaymentPathWithReceipt
			}
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.PaymentOperation], error) {
				return a.client.CreatePaymentOperation(ctx, payload, path)
			})
		},
	}
	create.Flags().StringVar(&customerCode, "customer-code", "", "customer code (resolved from accounts when empty)")
	create.Flags().Float64Var(&amount, "amount", 0, "amount in rubles")
	create.Flags().StringVar(&purpose, "purpose", "", "payment purpose")
	create.Flags().StringVar(&redirectURL, "redirect-url", "", "where the payer returns after paying")
	create.Flags().StringSliceVar(&modes, "mode", nil, "allowed payment modes: sbp, card, tinkoff, dolyame")
	create.Flags().IntVar(&ttl, "ttl", 0, "link lifetime in minutes")
	create.Flags().BoolVar(&withReceipt, "with-receipt", false, "use the payments_with_receipt endpoint")
	_ = create.MarkFlagRequired("amount")
	_ = create.MarkFlagRequired("purpose")

	info := &cobra.Command{
		Use:   "info <operation-id>",
		Short: "Show one payment operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.PaymentPageData], error) {
				return a.client.PaymentOperationInfo(ctx, args[0])
			})
		},
	}

	capture := &cobra.Command{
		Use:   "capture <operation-id>",
		Short: "Capture a pre-authorized payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.ResultBody], error) {
				return a.client.CapturePayment(ctx, args[0])
			})
		},
	}

	var refundAmount float64
	refund := &cobra.Command{
		Use:   "refund <operation-id>",
		Short: "Refund a payment fully or partially",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.Refund], error) {
				return a.client.RefundPaymentOperation(ctx, args[0], domain.RefundPayload{Amount: refundAmount})
			})
		},
	}
	refund.Flags().Float64Var(&refundAmount, "amount", 0, "amount to refund")
	_ = refund.MarkFlagRequired("amount")

	cmd.AddCommand(list, create, info, capture, refund)
	return cmd
}

func registryCmd(a *app) *cobra.Command {
	var customerCode, merchantID, paymentID, date string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Show the settlement registry of one merchant day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			query := domain.NewPaymentRegistryQuery(customerCode, merchantID, paymentID, day)
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.RegistryPageData], error) {
				return a.client.GetPaymentRegistry(ctx, query)
			})
		},
	}
	cmd.Flags().StringVar(&customerCode, "customer-code", "", "customer code (resolved from accounts when empty)")
	cmd.Flags().StringVar(&merchantID, "merchant-id", "", "merchant id")
	cmd.Flags().StringVar(&paymentID, "payment-id", "", "limit to one payment")
	cmd.Flags().StringVar(&date, "date", "", "registry day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("merchant-id")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func retailersCmd(a *app) *cobra.Command {
	var customerCode string
	cmd := &cobra.Command{
		Use:   "retailers",
		Short: "List retailers onboarded to internet acquiring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.RetailerPageData], error) {
				return a.client.GetRetailers(ctx, domain.RetailerQuery{CustomerCode: customerCode})
			})
		},
	}
	cmd.Flags().StringVar(&customerCode, "customer-code", "", "customer code (resolved from accounts when empty)")
	return cmd
}

func statementsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Account statements",
	}

	var accountID, from, to string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Request a statement for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := domain.ParseDate(from)
			if err != nil {
				return err
			}
			end, err := domain.ParseDate(to)
			if err != nil {
				return err
			}
			payload := domain.StatementPayload{AccountID: accountID, StartDateTime: start, EndDateTime: end}
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.StatementPageData], error) {
				return a.client.InitStatement(ctx, payload)
			})
		},
	}
	initCmd.Flags().StringVar(&accountID, "account-id", "", "account id, e.g. 40817810802000000008/044525104")
	initCmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	initCmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	for _, name := range []string{"account-id", "from", "to"} {
		_ = initCmd.MarkFlagRequired(name)
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List prepared statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd.Context(), a, a.client.GetStatementsList)
		},
	}

	get := &cobra.Command{
		Use:   "get <account-id> <statement-id>",
		Short: "Show one statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return read(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.StatementPageData], error) {
				return a.client.GetStatement(ctx, args[0], args[1])
			})
		},
	}

	cmd.AddCommand(initCmd, list, get)
	return cmd
}

func webhooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage the webhook subscription of the application",
	}

	var hookURL string
	var types []string
	subscription := func() (domain.Webhook, error) {
		hook := domain.Webhook{URL: hookURL}
		for _, t := range types {
			wt, err := domain.ParseWebhookType(t)
			if err != nil {
				return hook, err
			}
			hook.WebhooksList = append(hook.WebhooksList, wt)
		}
		return hook, nil
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Subscribe a URL to webhook types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hook, err := subscription()
			if err != nil {
				return err
			}
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.Webhook], error) {
				return a.client.CreateWebhook(ctx, hook)
			})
		},
	}
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Replace the webhook subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hook, err := subscription()
			if err != nil {
				return err
			}
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.Webhook], error) {
				return a.client.EditWebhook(ctx, hook)
			})
		},
	}
	for _, c := range []*cobra.Command{create, edit} {
		c.Flags().StringVar(&hookURL, "url", "", "receiver URL")
		c.Flags().StringSliceVar(&types, "type", nil, "webhook types, e.g. incomingPayment,acquiringInternetPayment")
		_ = c.MarkFlagRequired("url")
		_ = c.MarkFlagRequired("type")
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the webhook subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return read(cmd.Context(), a, a.client.GetWebhooks)
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return write(cmd.Context(), a, a.client.DeleteWebhook)
		},
	}

	test := &cobra.Command{
		Use:   "test <webhook-type>",
		Short: "Ask the bank to send a test delivery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wt, err := domain.ParseWebhookType(args[0])
			if err != nil {
				return err
			}
			return write(cmd.Context(), a, func(ctx context.Context) (*domain.Data[domain.ResultBody], error) {
				return a.client.SendTestWebhook(ctx, wt)
			})
		},
	}

	cmd.AddCommand(create, edit, get, del, test)
	return cmd
}

func resolveCustomerCodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve-customer-code",
		Short: "Derive the customer code from the Business accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code, err := resilience.Call(cmd.Context(), a.cb, a.retry, a.client.ResolveCustomerCode)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, code)
			return err
		},
	}
}

func optionalDate(s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
