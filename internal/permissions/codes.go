package permissions

// Function codes carried over from the legacy permission tables.
const (
	FnSystems        = "SISTEMAS"
	FnBanks          = "BANCOS"
	FnBranches       = "AGENCIAS"
	FnMunicipalities = "MUNICIPIOS"
	FnUnions         = "SINDICATOS"
	FnCostCenters    = "CENTROSCUSTO"
	FnEmployees      = "FUNCIONARIOS"
	FnAudit          = "AUDITORIA"
)
