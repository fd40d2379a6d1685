package autocomplete

type cmdCompType int

const (
	cmdCompCommand cmdCompType = iota + 1
	cmdCompFlag
	cmdCompTerminator
)

type cComp struct {
	// raw is the complete value before component parsing
	raw string
	// cTag is command name or positional for cmdCompCommand, flag name for cmdCompFlag
	cTag string
	// cValue is the inline flag value of the --flag=value form
	cValue string
	// hasValue marks the --flag=value form, even when value is empty
	hasValue bool
	cType    cmdCompType
}
