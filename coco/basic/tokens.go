package basic

// keywordTable maps single-byte tokens to their source text. It has
// entries for codes 0x80..0xCE only; it holds no Super Extended Color
// BASIC keywords and no arithmetic or comparison operator tokens. Any
// code >= 0x80 with no entry decodes to the <??XX> sentinel.
var keywordTable = map[byte]string{
	0x80: "FOR",
	0x81: "GO",
	0x82: "REM",
	0x83: "'",
	0x84: "ELSE",
	0x85: "IF",
	0x86: "DATA",
	0x87: "PRINT",
	0x88: "ON",
	0x89: "INPUT",
	0x8A: "END",
	0x8B: "NEXT",
	0x8C: "DIM",
	0x8D: "READ",
	0x8E: "RUN",
	0x8F: "RESTORE",
	0x90: "RETURN",
	0x91: "STOP",
	0x92: "POKE",
	0x93: "CONT",
	0x94: "LIST",
	0x95: "CLEAR",
	0x96: "NEW",
	0x97: "CLOAD",
	0x98: "CSAVE",
	0x99: "OPEN",
	0x9A: "CLOSE",
	0x9B: "LLIST",
	0x9C: "SET",
	0x9D: "RESET",
	0x9E: "CLS",
	0x9F: "MOTOR",
	0xA0: "SOUND",
	0xA1: "AUDIO",
	0xA2: "EXEC",
	0xA3: "SKIPF",
	0xA4: "TAB(",
	0xA5: "TO",
	0xA6: "SUB",
	0xA7: "FN",
	0xA8: "THEN",
	0xA9: "NOT",
	0xAA: "STEP",
	0xAB: "OFF",
	0xAC: "AND",
	0xAD: "OR",
	0xAE: "LINE",
	0xAF: "LET",
	0xB0: "KILL",
	0xB1: "DIR",
	0xB2: "DRIVE",
	0xB3: "BACKUP",
	0xB4: "COPY",
	0xB5: "RENAME",
	0xB6: "LOAD",
	0xB7: "SAVE",
	0xB8: "MERGE",
	0xB9: "DSKI$",
	0xBA: "DSKO$",
	0xBB: "PRINT#",
	0xBC: "INPUT#",
	0xBD: "LINPUT",
	0xBE: "FIELD",
	0xBF: "LSET",
	0xC0: "RSET",
	0xC1: "GET",
	0xC2: "PUT",
	0xC3: "WRITE#",
	0xC4: "PMODE",
	0xC5: "SCREEN",
	0xC6: "PCLS",
	0xC7: "PSET",
	0xC8: "PRESET",
	0xC9: "CIRCLE",
	0xCA: "PAINT",
	0xCB: "DRAW",
	0xCC: "PLAY",
	0xCD: "DLOAD",
	0xCE: "COLOR",
}

// functionTable maps the 0xFF-prefixed function code byte (0x80..0xAC) to
// its source text.
var functionTable = map[byte]string{
	0x80: "SGN",
	0x81: "INT",
	0x82: "ABS",
	0x83: "USR",
	0x84: "RND",
	0x85: "SIN",
	0x86: "PEEK",
	0x87: "LEN",
	0x88: "STR$",
	0x89: "VAL",
	0x8A: "ASC",
	0x8B: "CHR$",
	0x8C: "EOF",
	0x8D: "JOYSTK",
	0x8E: "LEFT$",
	0x8F: "RIGHT$",
	0x90: "MID$",
	0x91: "POINT",
	0x92: "INKEY$",
	0x93: "MEM",
	0x94: "ATN",
	0x95: "COS",
	0x96: "TAN",
	0x97: "EXP",
	0x98: "FIX",
	0x99: "LOG",
	0x9A: "POS",
	0x9B: "SQR",
	0x9C: "HEX$",
	0x9D: "VARPTR",
	0x9E: "INSTR",
	0x9F: "TIMER",
	0xA0: "PPOINT",
	0xA1: "STRING$",
	0xA2: "USING",
	0xA3: "ERR",
	0xA4: "ERL",
	0xA5: "HIMEM",
	0xA6: "LOC",
	0xA7: "LOF",
	0xA8: "FREE",
	0xA9: "CVN",
	0xAA: "MKN$",
	0xAB: "FIX$",
	0xAC: "EOF$",
}

// tokenGO, tokenTO and tokenSUB are the byte codes involved in the
// GOTO/GOSUB fusion rule (see DESIGN.md's open-question decision).
const (
	tokenGO  = 0x81
	tokenTO  = 0xA5
	tokenSUB = 0xA6

	tokenREM          = 0x82
	tokenRemarkQuote  = 0x83
	tokenColon        = 0x3A
	tokenQuote        = 0x22
	tokenSpace        = 0x20
	tokenFunctionByte = 0xFF
	mlPreambleByte    = 0xFF
	mlPreambleLen     = 5
)
