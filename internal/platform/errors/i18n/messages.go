package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown           = "UNKNOWN"
	CodeMalformedCatalog  = "MALFORMED_CATALOG"
	CodeIncompleteCatalog = "INCOMPLETE_CATALOG"
	CodeUnknownPart       = "UNKNOWN_PART"
	CodeGenderMismatch    = "GENDER_MISMATCH"
	CodePremiumRequired   = "PREMIUM_REQUIRED"
	CodeColorNotLegal     = "COLOR_NOT_LEGAL"
	CodeNotColorable      = "NOT_COLORABLE"
	CodeFamilyNotSet      = "FAMILY_NOT_SET"
	CodeInvalidGender     = "INVALID_GENDER"
	CodeInvalidFigure     = "INVALID_FIGURE"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "An unexpected error occurred",

		// Catalog errors
		CodeMalformedCatalog:  "The clothing catalog is malformed: {{.Reason}}",
		CodeIncompleteCatalog: "The clothing catalog has no {{.Gender}} option for {{.Family}}",

		// Figure composition errors
		CodeUnknownPart:     "Part {{.PartID}} does not exist in {{.Family}}",
		CodeGenderMismatch:  "Part {{.PartID}} in {{.Family}} is not available for gender {{.Gender}}",
		CodePremiumRequired: "Part {{.PartID}} in {{.Family}} requires Habbo Club",
		CodeColorNotLegal:   "Color {{.ColorID}} cannot be used on {{.Family}}-{{.PartID}}",
		CodeNotColorable:    "Part {{.PartID}} in {{.Family}} cannot be recolored",
		CodeFamilyNotSet:    "Choose a {{.Family}} part before picking its color",
		CodeInvalidGender:   "Gender {{.Gender}} is not valid for a figure",
		CodeInvalidFigure:   "The figure is not valid: {{.Reason}}",

		// Request errors
		CodeInvalidArgument: "The request is not valid: {{.Reason}}",

		// Storage errors
		CodeNotFound: "The requested resource was not found",
	},
}

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeUnknown: "Ocorreu um erro inesperado",

		CodeMalformedCatalog:  "O catálogo de roupas está malformado: {{.Reason}}",
		CodeIncompleteCatalog: "O catálogo de roupas não tem opção {{.Gender}} para {{.Family}}",

		CodeUnknownPart:     "A peça {{.PartID}} não existe em {{.Family}}",
		CodeGenderMismatch:  "A peça {{.PartID}} de {{.Family}} não está disponível para o gênero {{.Gender}}",
		CodePremiumRequired: "A peça {{.PartID}} de {{.Family}} é exclusiva do Habbo Club",
		CodeColorNotLegal:   "A cor {{.ColorID}} não pode ser usada em {{.Family}}-{{.PartID}}",
		CodeNotColorable:    "A peça {{.PartID}} de {{.Family}} não pode ser recolorida",
		CodeFamilyNotSet:    "Escolha uma peça de {{.Family}} antes de escolher a cor",
		CodeInvalidGender:   "O gênero {{.Gender}} não é válido para um visual",
		CodeInvalidFigure:   "O visual não é válido: {{.Reason}}",

		CodeInvalidArgument: "A requisição não é válida: {{.Reason}}",

		CodeNotFound: "O recurso solicitado não foi encontrado",
	},
}
