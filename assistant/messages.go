package assistant

import (
	"fmt"

	contractx "github.com/fiberlux/odoo-assistant/assistant/contract"
)

// WelcomeMessage is the /start reply.
const WelcomeMessage = `🤖 *Bienvenido al Asistente Odoo*

Conectado a las APIs de Fiberlux. Puedo ayudarte con:

📋 *Consultar servicios* por ID
📄 *Listar contratos* por RUC/DNI
💰 *Consultar deudas* en BCP

*Comandos:*
` + "`/start`" + ` - Este mensaje
` + "`/help`" + ` - Ayuda detallada
` + "`/servicio <ID>`" + ` - Consultar servicio
` + "`/contrato <RUC/DNI>`" + ` - Listar contratos
` + "`/deuda_bcp <RUC/DNI>`" + ` - Deuda BCP

*Ejemplos:*
` + "`/servicio 8812`" + `
` + "`/contrato 20607724050`" + `
` + "`/deuda_bcp 20514326062`" + `

También puedes escribir: "consulta servicio 8812"`

// HelpMessage is the /help reply.
const HelpMessage = `📚 *Comandos disponibles:*

` + "`/start`" + ` - Mensaje de bienvenida
` + "`/help`" + ` - Esta ayuda
` + "`/servicio <ID> [empresa]`" + ` - Consultar servicio
` + "`/contrato <RUC/DNI> [empresa]`" + ` - Listar contratos
` + "`/deuda_bcp <RUC/DNI> [PEN/USD]`" + ` - Deuda BCP

*Parámetros:*
- ` + "`<ID>`" + `: Número de servicio
- ` + "`<RUC/DNI>`" + `: 8-11 dígitos
- ` + "`[empresa]`" + `: ID empresa (default: 5)
- ` + "`[PEN/USD]`" + `: Moneda (default: PEN)

*Formas de usar:*
1. Comandos directos: ` + "`/servicio 8812`" + `
2. Texto natural: "consulta el servicio 8812"`

// Acknowledgment is the interim "working on it" message sent before the
// backend call for a resolved query.
func Acknowledgment(q contractx.Query) string {
	switch q.Kind {
	case contractx.KindServiceLookup:
		return fmt.Sprintf("🔍 Consultando servicio %s...", q.ServiceLookup.ServiceID)
	case contractx.KindContractList:
		return fmt.Sprintf("📄 Buscando contratos para %s...", q.ContractList.NationalID)
	case contractx.KindDebtLookup:
		return fmt.Sprintf("💰 Consultando deuda BCP para %s (%s)...", q.DebtLookup.NationalID, q.DebtLookup.Currency)
	default:
		return "🔍 Consultando..."
	}
}
