package parser

// Tag is the closed discriminant of a Node.
type Tag int

const (
	TagInvalid Tag = iota

	// Keyword literals
	TagThis
	TagSuper
	TagNull
	TagClass
	TagNew

	// Names and literals
	TagIdentifier
	TagPrimitiveType
	TagDecimalLiteral
	TagHexLiteral
	TagOctLiteral
	TagBinaryLiteral
	TagFloatLiteral
	TagCharLiteral
	TagStringLiteral
	TagBooleanLiteral

	// Expressions
	TagInstanceofExpression
	TagSquareExpression
	TagPostfixExpression
	TagPrefixExpression
	TagIfElseExpression
	TagQualifiedExpression
	TagMethodInvocation
	TagMethodReference
	TagOperatorExpression
	TagParExpression
	TagCastExpression
	TagInstanceCreation
	TagArrayCreation
	TagArrayInitializer

	// Lambdas
	TagLambdaExpression
	TagIdentifiers
	TagIdentifierList
	TagFormalParameters
	TagFormalParameter
	TagBlock
	TagExpressionStatement
	TagStatement

	// Types and annotations
	TagTypeType
	TagClassOrInterfaceType
	TagClassOrInterfaceTypeElement
	TagTypeArguments
	TagWildcard
	TagModifier
	TagAnnotation
	TagElementValuePairs
	TagElementValuePair
	TagElementValueArrayInitializer
	TagQualifiedName
)

var tagNames = map[Tag]string{
	TagInvalid:                      "INVALID",
	TagThis:                         "THIS",
	TagSuper:                        "SUPER",
	TagNull:                         "NULL",
	TagClass:                        "CLASS",
	TagNew:                          "NEW",
	TagIdentifier:                   "IDENTIFIER",
	TagPrimitiveType:                "PRIMITIVE_TYPE",
	TagDecimalLiteral:               "DECIMAL_LITERAL",
	TagHexLiteral:                   "HEX_LITERAL",
	TagOctLiteral:                   "OCT_LITERAL",
	TagBinaryLiteral:                "BINARY_LITERAL",
	TagFloatLiteral:                 "FLOAT_LITERAL",
	TagCharLiteral:                  "CHAR_LITERAL",
	TagStringLiteral:                "STRING_LITERAL",
	TagBooleanLiteral:               "BOOLEAN_LITERAL",
	TagInstanceofExpression:         "INSTANCEOF_EXPRESSION",
	TagSquareExpression:             "SQUARE_EXPRESSION",
	TagPostfixExpression:            "POSTFIX_EXPRESSION",
	TagPrefixExpression:             "PREFIX_EXPRESSION",
	TagIfElseExpression:             "IF_ELSE_EXPRESSION",
	TagQualifiedExpression:          "QUALIFIED_EXPRESSION",
	TagMethodInvocation:             "METHOD_INVOCATION",
	TagMethodReference:              "METHOD_REFERENCE",
	TagOperatorExpression:           "OPERATOR_EXPRESSION",
	TagParExpression:                "PAR_EXPRESSION",
	TagCastExpression:               "CAST_EXPRESSION",
	TagInstanceCreation:             "INSTANCE_CREATION",
	TagArrayCreation:                "ARRAY_CREATION",
	TagArrayInitializer:             "ARRAY_INITIALIZER",
	TagLambdaExpression:             "LAMBDA_EXPRESSION",
	TagIdentifiers:                  "IDENTIFIERS",
	TagIdentifierList:               "IDENTIFIER_LIST",
	TagFormalParameters:             "FORMAL_PARAMETERS",
	TagFormalParameter:              "FORMAL_PARAMETER",
	TagBlock:                        "BLOCK",
	TagExpressionStatement:          "EXPRESSION_STATEMENT",
	TagStatement:                    "STATEMENT",
	TagTypeType:                     "TYPE_TYPE",
	TagClassOrInterfaceType:         "CLASS_OR_INTERFACE_TYPE",
	TagClassOrInterfaceTypeElement:  "CLASS_OR_INTERFACE_TYPE_ELEMENT",
	TagTypeArguments:                "TYPE_ARGUMENTS",
	TagWildcard:                     "WILDCARD",
	TagModifier:                     "MODIFIER",
	TagAnnotation:                   "ANNOTATION",
	TagElementValuePairs:            "ELEMENT_VALUE_PAIRS",
	TagElementValuePair:             "ELEMENT_VALUE_PAIR",
	TagElementValueArrayInitializer: "ELEMENT_VALUE_ARRAY_INITIALIZER",
	TagQualifiedName:                "QUALIFIED_NAME",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Tags returns every valid tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, 0, len(tagNames)-1)
	for t := TagThis; t <= TagQualifiedName; t++ {
		tags = append(tags, t)
	}
	return tags
}

// LookupTag returns the tag named name, as printed by Tag.String.
func LookupTag(name string) (Tag, bool) {
	for t, n := range tagNames {
		if n == name && t != TagInvalid {
			return t, true
		}
	}
	return TagInvalid, false
}

func literalTag(tok Token) Tag {
	switch tok.Kind {
	case TokenTrue, TokenFalse:
		return TagBooleanLiteral
	case TokenCharLiteral:
		return TagCharLiteral
	case TokenStringLiteral, TokenTextBlock:
		return TagStringLiteral
	case TokenFloatLiteral:
		return TagFloatLiteral
	}
	lit := tok.Literal
	switch {
	case len(lit) > 1 && (lit[1] == 'x' || lit[1] == 'X'):
		return TagHexLiteral
	case len(lit) > 1 && (lit[1] == 'b' || lit[1] == 'B'):
		return TagBinaryLiteral
	case len(lit) > 1 && lit[0] == '0' && isDecimal(rune(lit[1])):
		return TagOctLiteral
	}
	return TagDecimalLiteral
}
