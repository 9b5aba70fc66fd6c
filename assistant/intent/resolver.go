// Package intent maps chat input, either a structured command or free text,
// to a validated backend query.
package intent

import (
	"regexp"
	"strings"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
)

// Recognized command names, as registered with the chat platform.
const (
	CmdService   = "servicio"
	CmdContracts = "contrato"
	CmdDebtBCP   = "deuda_bcp"
)

var (
	digitRun      = regexp.MustCompile(`\d+`)
	nationalIDRun = regexp.MustCompile(`\d{8,11}`)

	numericOnly     = regexp.MustCompile(`^\d+$`)
	nationalIDExact = regexp.MustCompile(`^\d{8,11}$`)
)

const helpMessage = "🤔 Puedo ayudarte con:\n\n" +
	"• Consultas de servicios\n" +
	"• Listado de contratos\n" +
	"• Consultas de deudas BCP\n\n" +
	"Escribe algo como:\n" +
	"'Consulta el servicio 8812'\n" +
	"'Ver contratos de 20607724050'\n" +
	"'Deuda BCP 20514326062'\n\n" +
	"O usa los comandos: /servicio, /contrato, /deuda_bcp"

func reject(reason contractx.RejectReason, msg string) (contractx.Query, *contractx.Rejection) {
	return contractx.Query{}, &contractx.Rejection{Reason: reason, Message: msg}
}

// ResolveCommand maps a structured command plus positional arguments to a
// Query. Optional trailing arguments default: company id to "5", currency to
// PEN. Arguments are validated here; an invalid one never reaches the gateway.
func ResolveCommand(name string, args []string) (contractx.Query, *contractx.Rejection) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CmdService:
		if len(args) == 0 {
			return reject(contractx.RejectMissingArgument,
				"❌ Uso: `/servicio <ID> [empresa_id]`\nEjemplo: `/servicio 8812 5`")
		}
		serviceID := args[0]
		if !numericOnly.MatchString(serviceID) {
			return reject(contractx.RejectInvalidArgument, "❌ El ID de servicio debe ser numérico")
		}
		companyID := contractx.DefaultCompanyID
		if len(args) > 1 {
			if !numericOnly.MatchString(args[1]) {
				return reject(contractx.RejectInvalidArgument, "❌ El ID de empresa debe ser numérico")
			}
			companyID = args[1]
		}
		return contractx.NewServiceLookup(companyID, serviceID), nil

	case CmdContracts:
		if len(args) == 0 {
			return reject(contractx.RejectMissingArgument,
				"❌ Uso: `/contrato <RUC/DNI> [empresa_id]`\nEjemplo: `/contrato 20607724050 5`")
		}
		nationalID := args[0]
		if !nationalIDExact.MatchString(nationalID) {
			return reject(contractx.RejectInvalidArgument, "❌ El RUC/DNI debe tener entre 8 y 11 dígitos")
		}
		companyID := contractx.DefaultCompanyID
		if len(args) > 1 {
			if !numericOnly.MatchString(args[1]) {
				return reject(contractx.RejectInvalidArgument, "❌ El ID de empresa debe ser numérico")
			}
			companyID = args[1]
		}
		return contractx.NewContractList(companyID, nationalID), nil

	case CmdDebtBCP:
		if len(args) == 0 {
			return reject(contractx.RejectMissingArgument,
				"❌ Uso: `/deuda_bcp <RUC/DNI> [PEN/USD]`\nEjemplo: `/deuda_bcp 20514326062 PEN`")
		}
		nationalID := args[0]
		if !nationalIDExact.MatchString(nationalID) {
			return reject(contractx.RejectInvalidArgument, "❌ El RUC/DNI debe tener entre 8 y 11 dígitos")
		}
		currency := contractx.CurrencyPEN
		if len(args) > 1 {
			switch contractx.Currency(strings.ToUpper(args[1])) {
			case contractx.CurrencyPEN:
				currency = contractx.CurrencyPEN
			case contractx.CurrencyUSD:
				currency = contractx.CurrencyUSD
			default:
				return reject(contractx.RejectInvalidCurrency, "❌ Moneda debe ser PEN o USD")
			}
		}
		return contractx.NewDebtLookup(nationalID, currency), nil

	default:
		return reject(contractx.RejectUnrecognized, helpMessage)
	}
}

// textRule pairs a keyword predicate with its resolver. Rules are evaluated
// top-to-bottom and the first match wins; a message mentioning both "servicio"
// and "contrato" resolves as a service lookup. The order is part of the
// contract, not an accident of code layout.
type textRule struct {
	match   func(lower string) bool
	resolve func(text, lower string) (contractx.Query, *contractx.Rejection)
}

var textRules = []textRule{
	{
		match:   func(lower string) bool { return strings.Contains(lower, "servicio") },
		resolve: resolveServiceText,
	},
	{
		match:   func(lower string) bool { return strings.Contains(lower, "contrato") },
		resolve: resolveContractText,
	},
	{
		match: func(lower string) bool {
			return strings.Contains(lower, "deuda") && strings.Contains(lower, "bcp")
		},
		resolve: resolveDebtText,
	},
}

// ResolveText maps free-form text to a Query by keyword matching.
func ResolveText(text string) (contractx.Query, *contractx.Rejection) {
	lower := strings.ToLower(text)
	for _, rule := range textRules {
		if rule.match(lower) {
			return rule.resolve(text, lower)
		}
	}
	return reject(contractx.RejectUnrecognized, helpMessage)
}

func resolveServiceText(text, _ string) (contractx.Query, *contractx.Rejection) {
	serviceID := digitRun.FindString(text)
	if serviceID == "" {
		return reject(contractx.RejectMissingArgument,
			"❌ Necesito el ID del servicio. Ejemplo: 'servicio 8812' o '/servicio 8812'")
	}
	return contractx.NewServiceLookup(contractx.DefaultCompanyID, serviceID), nil
}

func resolveContractText(text, _ string) (contractx.Query, *contractx.Rejection) {
	nationalID := nationalIDRun.FindString(text)
	if nationalID == "" {
		return reject(contractx.RejectMissingArgument,
			"❌ Necesito el RUC o DNI. Ejemplo: 'contratos de 20607724050'")
	}
	return contractx.NewContractList(contractx.DefaultCompanyID, nationalID), nil
}

func resolveDebtText(text, lower string) (contractx.Query, *contractx.Rejection) {
	nationalID := nationalIDRun.FindString(text)
	if nationalID == "" {
		return reject(contractx.RejectMissingArgument,
			"❌ Necesito el RUC o DNI. Ejemplo: 'deuda bcp 20514326062'")
	}
	currency := contractx.CurrencyPEN
	if strings.Contains(lower, "dolar") || strings.Contains(lower, "usd") {
		currency = contractx.CurrencyUSD
	}
	return contractx.NewDebtLookup(nationalID, currency), nil
}

// HelpMessage is the generic guidance shown for unrecognized input.
func HelpMessage() string { return helpMessage }
