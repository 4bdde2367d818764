package macho

import "fmt"

// CPU is a Mach-O cpu_type_t.
type CPU uint32

const (
	cpuArch64   CPU = 0x01000000
	cpuArch6432 CPU = 0x02000000

	CPUX86     CPU = 7
	CPUX86_64  CPU = CPUX86 | cpuArch64
	CPUARM     CPU = 12
	CPUARM64   CPU = CPUARM | cpuArch64
	CPUARM6432 CPU = CPUARM | cpuArch6432
	CPUPPC     CPU = 18
	CPUPPC64   CPU = CPUPPC | cpuArch64
)

var cpuNames = map[CPU]string{
	CPUX86:     "i386",
	CPUX86_64:  "x86_64",
	CPUARM:     "arm",
	CPUARM64:   "arm64",
	CPUARM6432: "arm64_32",
	CPUPPC:     "ppc",
	CPUPPC64:   "ppc64",
}

func (c CPU) String() string {
	if s, ok := cpuNames[c]; ok {
		return s
	}
	return fmt.Sprintf("cpu(0x%x)", uint32(c))
}

// ParseCPU returns the CPU named s.
func ParseCPU(s string) (CPU, bool) {
	for c, name := range cpuNames {
		if name == s {
			return c, true
		}
	}
	return 0, false
}

// FileType is a Mach-O filetype.
type FileType uint32

const (
	TypeObject     FileType = 0x1
	TypeExecute    FileType = 0x2
	TypeFVMLib     FileType = 0x3
	TypeCore       FileType = 0x4
	TypePreload    FileType = 0x5
	TypeDylib      FileType = 0x6
	TypeDylinker   FileType = 0x7
	TypeBundle     FileType = 0x8
	TypeDylibStub  FileType = 0x9
	TypeDSYM       FileType = 0xa
	TypeKextBundle FileType = 0xb
	TypeFileset    FileType = 0xc
)

var fileTypeNames = [...]string{
	TypeObject:     "OBJECT",
	TypeExecute:    "EXECUTE",
	TypeFVMLib:     "FVMLIB",
	TypeCore:       "CORE",
	TypePreload:    "PRELOAD",
	TypeDylib:      "DYLIB",
	TypeDylinker:   "DYLINKER",
	TypeBundle:     "BUNDLE",
	TypeDylibStub:  "DYLIB_STUB",
	TypeDSYM:       "DSYM",
	TypeKextBundle: "KEXT_BUNDLE",
	TypeFileset:    "FILESET",
}

func (t FileType) String() string {
	if int(t) < len(fileTypeNames) && fileTypeNames[t] != "" {
		return fileTypeNames[t]
	}
	return fmt.Sprintf("filetype(0x%x)", uint32(t))
}

// LoadCmd is a load command type.
type LoadCmd uint32

// LoadCmdReqDyld is or'ed into commands the dynamic linker must understand.
const LoadCmdReqDyld LoadCmd = 0x80000000

const (
	LoadCmdSegment         LoadCmd = 0x1
	LoadCmdSymtab          LoadCmd = 0x2
	LoadCmdThread          LoadCmd = 0x4
	LoadCmdUnixThread      LoadCmd = 0x5
	LoadCmdDysymtab        LoadCmd = 0xb
	LoadCmdLoadDylib       LoadCmd = 0xc
	LoadCmdIDDylib         LoadCmd = 0xd
	LoadCmdLoadDylinker    LoadCmd = 0xe
	LoadCmdIDDylinker      LoadCmd = 0xf
	LoadCmdLoadWeakDylib   LoadCmd = 0x18 | LoadCmdReqDyld
	LoadCmdSegment64       LoadCmd = 0x19
	LoadCmdUUID            LoadCmd = 0x1b
	LoadCmdRPath           LoadCmd = 0x1c | LoadCmdReqDyld
	LoadCmdCodeSignature   LoadCmd = 0x1d
	LoadCmdReexportDylib   LoadCmd = 0x1f | LoadCmdReqDyld
	LoadCmdDyldInfo        LoadCmd = 0x22
	LoadCmdDyldInfoOnly    LoadCmd = 0x22 | LoadCmdReqDyld
	LoadCmdVersionMinMacOS LoadCmd = 0x24
	LoadCmdFunctionStarts  LoadCmd = 0x26
	LoadCmdMain            LoadCmd = 0x28 | LoadCmdReqDyld
	LoadCmdDataInCode      LoadCmd = 0x29
	LoadCmdSourceVersion   LoadCmd = 0x2a
	LoadCmdBuildVersion    LoadCmd = 0x32
	LoadCmdDyldExportsTrie LoadCmd = 0x33 | LoadCmdReqDyld
	LoadCmdDyldChainedFix  LoadCmd = 0x34 | LoadCmdReqDyld
)

var loadCmdNames = map[LoadCmd]string{
	LoadCmdSegment:         "LC_SEGMENT",
	LoadCmdSymtab:          "LC_SYMTAB",
	LoadCmdThread:          "LC_THREAD",
	LoadCmdUnixThread:      "LC_UNIXTHREAD",
	LoadCmdDysymtab:        "LC_DYSYMTAB",
	LoadCmdLoadDylib:       "LC_LOAD_DYLIB",
	LoadCmdIDDylib:         "LC_ID_DYLIB",
	LoadCmdLoadDylinker:    "LC_LOAD_DYLINKER",
	LoadCmdIDDylinker:      "LC_ID_DYLINKER",
	LoadCmdLoadWeakDylib:   "LC_LOAD_WEAK_DYLIB",
	LoadCmdSegment64:       "LC_SEGMENT_64",
	LoadCmdUUID:            "LC_UUID",
	LoadCmdRPath:           "LC_RPATH",
	LoadCmdCodeSignature:   "LC_CODE_SIGNATURE",
	LoadCmdReexportDylib:   "LC_REEXPORT_DYLIB",
	LoadCmdDyldInfo:        "LC_DYLD_INFO",
	LoadCmdDyldInfoOnly:    "LC_DYLD_INFO_ONLY",
	LoadCmdVersionMinMacOS: "LC_VERSION_MIN_MACOSX",
	LoadCmdFunctionStarts:  "LC_FUNCTION_STARTS",
	LoadCmdMain:            "LC_MAIN",
	LoadCmdDataInCode:      "LC_DATA_IN_CODE",
	LoadCmdSourceVersion:   "LC_SOURCE_VERSION",
	LoadCmdBuildVersion:    "LC_BUILD_VERSION",
	LoadCmdDyldExportsTrie: "LC_DYLD_EXPORTS_TRIE",
	LoadCmdDyldChainedFix:  "LC_DYLD_CHAINED_FIXUPS",
}

func (c LoadCmd) String() string {
	if s, ok := loadCmdNames[c]; ok {
		return s
	}
	return fmt.Sprintf("LC(0x%x)", uint32(c))
}

// Fixed record sizes.
const (
	headerSize32       = 28
	headerSize64       = 32
	loadCommandMinSize = 8
	segmentSize32      = 56
	segmentSize64      = 72
	sectionSize32      = 68
	sectionSize64      = 80
	uuidCommandSize    = 24
	symtabCommandSize  = 24
	nlistSize32        = 12
	nlistSize64        = 16
	fatHeaderSize      = 8
	fatArchSize32      = 20
	fatArchSize64      = 32
	nameFieldSize      = 16
)

// maxFatArchs bounds the architecture count accepted from a fat header.
const maxFatArchs = 128
