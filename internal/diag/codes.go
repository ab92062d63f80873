package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexBadNumber           Code = 1003
	LexUnterminatedComment Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectLBrace       Code = 2004
	SynExpectRBrace       Code = 2005
	SynExpectRParen       Code = 2006
	SynExpectRBracket     Code = 2007
	SynExpectType         Code = 2008
	SynExpectExpression   Code = 2009
	SynUnexpectedTopLevel Code = 2010
	SynExpectContractName Code = 2011
	SynExpectMemberName   Code = 2012

	// Семантические
	SemaInfo             Code = 3000
	SemaUnknownParent    Code = 3001
	SemaInheritanceCycle Code = 3002
	SemaDuplicateMember  Code = 3003

	// Диагностики миграции: конструкции, которые чинит upgrade-движок.
	SemaAbstractRequired Code = 3100
	SemaOverrideMissing  Code = 3101
	SemaVirtualMissing   Code = 3102
	SemaLengthAssign     Code = 3103
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "MICA0000"
	case LexInfo:
		return "LEX1000"
	case LexUnknownChar:
		return "LEX1001"
	case LexUnterminatedString:
		return "LEX1002"
	case LexBadNumber:
		return "LEX1003"
	case LexUnterminatedComment:
		return "LEX1004"
	case SynInfo:
		return "SYN2000"
	case SynUnexpectedToken:
		return "SYN2001"
	case SynExpectIdentifier:
		return "SYN2002"
	case SynExpectSemicolon:
		return "SYN2003"
	case SynExpectLBrace:
		return "SYN2004"
	case SynExpectRBrace:
		return "SYN2005"
	case SynExpectRParen:
		return "SYN2006"
	case SynExpectRBracket:
		return "SYN2007"
	case SynExpectType:
		return "SYN2008"
	case SynExpectExpression:
		return "SYN2009"
	case SynUnexpectedTopLevel:
		return "SYN2010"
	case SynExpectContractName:
		return "SYN2011"
	case SynExpectMemberName:
		return "SYN2012"
	case SemaInfo:
		return "SEMA3000"
	case SemaUnknownParent:
		return "SEMA3001"
	case SemaInheritanceCycle:
		return "SEMA3002"
	case SemaDuplicateMember:
		return "SEMA3003"
	case SemaAbstractRequired:
		return "SEMA3100"
	case SemaOverrideMissing:
		return "SEMA3101"
	case SemaVirtualMissing:
		return "SEMA3102"
	case SemaLengthAssign:
		return "SEMA3103"
	default:
		return fmt.Sprintf("MICA%04d", uint16(c))
	}
}

// ID returns the stable string identifier used in logs and journals.
func (c Code) ID() string { return c.String() }
