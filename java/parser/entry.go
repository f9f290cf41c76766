package parser

// Entry selects the production a parse starts from.
type Entry int

const (
	EntryExpression Entry = iota
	EntryPrimary
	EntryLambdaExpression
	EntryBlock
	EntryTypeType
	EntryPrimitiveType
	EntryClassOrInterfaceType
	EntryTypeArguments
	EntryAnnotation
	EntryElementValue
	EntryQualifiedName
	EntryIdentifierList
	EntryArrayInitializer
)

var entryNames = map[Entry]string{
	EntryExpression:           "expression",
	EntryPrimary:              "primary",
	EntryLambdaExpression:     "lambdaExpression",
	EntryBlock:                "block",
	EntryTypeType:             "typeType",
	EntryPrimitiveType:        "primitiveType",
	EntryClassOrInterfaceType: "classOrInterfaceType",
	EntryTypeArguments:        "typeArguments",
	EntryAnnotation:           "annotation",
	EntryElementValue:         "elementValue",
	EntryQualifiedName:        "qualifiedName",
	EntryIdentifierList:       "identifierList",
	EntryArrayInitializer:     "arrayInitializer",
}

var entryFuncs = map[Entry]func(*Parser) (*Node, error){
	EntryExpression:           (*Parser).parseExpression,
	EntryPrimary:              (*Parser).parsePrimary,
	EntryLambdaExpression:     (*Parser).parseLambda,
	EntryBlock:                (*Parser).parseBlock,
	EntryTypeType:             (*Parser).parseTypeType,
	EntryPrimitiveType:        (*Parser).parsePrimitiveType,
	EntryClassOrInterfaceType: (*Parser).parseClassOrInterfaceType,
	EntryTypeArguments:        (*Parser).parseTypeArguments,
	EntryAnnotation:           (*Parser).parseAnnotation,
	EntryElementValue:         (*Parser).parseElementValue,
	EntryQualifiedName:        (*Parser).parseQualifiedName,
	EntryIdentifierList:       (*Parser).parseIdentifierList,
	EntryArrayInitializer:     (*Parser).parseArrayInitializer,
}

func (e Entry) String() string {
	if name, ok := entryNames[e]; ok {
		return name
	}
	return "unknown"
}

// Entries returns every entry production in declaration order.
func Entries() []Entry {
	entries := make([]Entry, 0, len(entryNames))
	for e := EntryExpression; e <= EntryArrayInitializer; e++ {
		entries = append(entries, e)
	}
	return entries
}

// LookupEntry finds an entry by the name printed by Entry.String.
func LookupEntry(name string) (Entry, bool) {
	for e, n := range entryNames {
		if n == name {
			return e, true
		}
	}
	return 0, false
}
