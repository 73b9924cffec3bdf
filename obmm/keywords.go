package obmm

// Keyword identifies the command named by the first token of a line.
type Keyword int

const (
	KeywordUnknown Keyword = iota

	// flow control
	KeywordIf
	KeywordIfNot
	KeywordElse
	KeywordEndIf
	KeywordSelect
	KeywordSelectMany
	KeywordSelectWithPreview
	KeywordSelectManyWithPreview
	KeywordSelectWithDescriptions
	KeywordSelectManyWithDescriptions
	KeywordSelectWithDescriptionsAndPreviews
	KeywordSelectManyWithDescriptionsAndPreviews
	KeywordSelectVar
	KeywordSelectString
	KeywordCase
	KeywordDefault
	KeywordBreak
	KeywordEndSelect
	KeywordFor
	KeywordContinue
	KeywordExit
	KeywordEndFor
	KeywordGoto
	KeywordLabel
	KeywordReturn
	KeywordAllowRunOnLines
	KeywordExecLines

	// functions
	KeywordMessage
	KeywordLoadEarly
	KeywordLoadBefore
	KeywordLoadAfter
	KeywordConflictsWith
	KeywordDependsOn
	KeywordConflictsWithRegex
	KeywordDependsOnRegex
	KeywordDontInstallAnyPlugins
	KeywordDontInstallAnyDataFiles
	KeywordInstallAllPlugins
	KeywordInstallAllDataFiles
	KeywordInstallPlugin
	KeywordDontInstallPlugin
	KeywordInstallDataFile
	KeywordDontInstallDataFile
	KeywordInstallDataFolder
	KeywordDontInstallDataFolder
	KeywordRegisterBSA
	KeywordUnregisterBSA
	KeywordFatalError
	KeywordUncheckESP
	KeywordSetDeactivationWarning
	KeywordCopyDataFile
	KeywordCopyPlugin
	KeywordCopyDataFolder
	KeywordPatchPlugin
	KeywordPatchDataFile
	KeywordEditINI
	KeywordEditSDP
	KeywordEditShader
	KeywordSetGMST
	KeywordSetGlobal
	KeywordSetPluginByte
	KeywordSetPluginShort
	KeywordSetPluginInt
	KeywordSetPluginLong
	KeywordSetPluginFloat
	KeywordDisplayImage
	KeywordDisplayText
	KeywordSetVar
	KeywordGetFolderName
	KeywordGetDirectoryName
	KeywordGetFileName
	KeywordGetFileNameWithoutExtension
	KeywordCombinePaths
	KeywordSubstring
	KeywordRemoveString
	KeywordStringLength
	KeywordInputString
	KeywordReadINI
	KeywordReadRendererInfo
	KeywordISet
	KeywordFSet
	KeywordEditXMLLine
	KeywordEditXMLReplace

	keywordCount
)

var keywordNames = [keywordCount]string{
	KeywordUnknown:                               "",
	KeywordIf:                                    "If",
	KeywordIfNot:                                 "IfNot",
	KeywordElse:                                  "Else",
	KeywordEndIf:                                 "EndIf",
	KeywordSelect:                                "Select",
	KeywordSelectMany:                            "SelectMany",
	KeywordSelectWithPreview:                     "SelectWithPreview",
	KeywordSelectManyWithPreview:                 "SelectManyWithPreview",
	KeywordSelectWithDescriptions:                "SelectWithDescriptions",
	KeywordSelectManyWithDescriptions:            "SelectManyWithDescriptions",
	KeywordSelectWithDescriptionsAndPreviews:     "SelectWithDescriptionsAndPreviews",
	KeywordSelectManyWithDescriptionsAndPreviews: "SelectManyWithDescriptionsAndPreviews",
	KeywordSelectVar:                             "SelectVar",
	KeywordSelectString:                          "SelectString",
	KeywordCase:                                  "Case",
	KeywordDefault:                               "Default",
	KeywordBreak:                                 "Break",
	KeywordEndSelect:                             "EndSelect",
	KeywordFor:                                   "For",
	KeywordContinue:                              "Continue",
	KeywordExit:                                  "Exit",
	KeywordEndFor:                                "EndFor",
	KeywordGoto:                                  "Goto",
	KeywordLabel:                                 "Label",
	KeywordReturn:                                "Return",
	KeywordAllowRunOnLines:                       "AllowRunOnLines",
	KeywordExecLines:                             "ExecLines",
	KeywordMessage:                               "Message",
	KeywordLoadEarly:                             "LoadEarly",
	KeywordLoadBefore:                            "LoadBefore",
	KeywordLoadAfter:                             "LoadAfter",
	KeywordConflictsWith:                         "ConflictsWith",
	KeywordDependsOn:                             "DependsOn",
	KeywordConflictsWithRegex:                    "ConflictsWithRegex",
	KeywordDependsOnRegex:                        "DependsOnRegex",
	KeywordDontInstallAnyPlugins:                 "DontInstallAnyPlugins",
	KeywordDontInstallAnyDataFiles:               "DontInstallAnyDataFiles",
	KeywordInstallAllPlugins:                     "InstallAllPlugins",
	KeywordInstallAllDataFiles:                   "InstallAllDataFiles",
	KeywordInstallPlugin:                         "InstallPlugin",
	KeywordDontInstallPlugin:                     "DontInstallPlugin",
	KeywordInstallDataFile:                       "InstallDataFile",
	KeywordDontInstallDataFile:                   "DontInstallDataFile",
	KeywordInstallDataFolder:                     "InstallDataFolder",
	KeywordDontInstallDataFolder:                 "DontInstallDataFolder",
	KeywordRegisterBSA:                           "RegisterBSA",
	KeywordUnregisterBSA:                         "UnregisterBSA",
	KeywordFatalError:                            "FatalError",
	KeywordUncheckESP:                            "UncheckESP",
	KeywordSetDeactivationWarning:                "SetDeactivationWarning",
	KeywordCopyDataFile:                          "CopyDataFile",
	KeywordCopyPlugin:                            "CopyPlugin",
	KeywordCopyDataFolder:                        "CopyDataFolder",
	KeywordPatchPlugin:                           "PatchPlugin",
	KeywordPatchDataFile:                         "PatchDataFile",
	KeywordEditINI:                               "EditINI",
	KeywordEditSDP:                               "EditSDP",
	KeywordEditShader:                            "EditShader",
	KeywordSetGMST:                               "SetGMST",
	KeywordSetGlobal:                             "SetGlobal",
	KeywordSetPluginByte:                         "SetPluginByte",
	KeywordSetPluginShort:                        "SetPluginShort",
	KeywordSetPluginInt:                          "SetPluginInt",
	KeywordSetPluginLong:                         "SetPluginLong",
	KeywordSetPluginFloat:                        "SetPluginFloat",
	KeywordDisplayImage:                          "DisplayImage",
	KeywordDisplayText:                           "DisplayText",
	KeywordSetVar:                                "SetVar",
	KeywordGetFolderName:                         "GetFolderName",
	KeywordGetDirectoryName:                      "GetDirectoryName",
	KeywordGetFileName:                           "GetFileName",
	KeywordGetFileNameWithoutExtension:           "GetFileNameWithoutExtension",
	KeywordCombinePaths:                          "CombinePaths",
	KeywordSubstring:                             "Substring",
	KeywordRemoveString:                          "RemoveString",
	KeywordStringLength:                          "StringLength",
	KeywordInputString:                           "InputString",
	KeywordReadINI:                               "ReadINI",
	KeywordReadRendererInfo:                      "ReadRendererInfo",
	KeywordISet:                                  "iSet",
	KeywordFSet:                                  "fSet",
	KeywordEditXMLLine:                           "EditXMLLine",
	KeywordEditXMLReplace:                        "EditXMLReplace",
}

var keywordLookup = func() map[string]Keyword {
	lookup := make(map[string]Keyword, keywordCount)
	for kw := KeywordUnknown + 1; kw < keywordCount; kw++ {
		lookup[keywordNames[kw]] = kw
	}
	return lookup
}()

// ParseKeyword maps a command name to its Keyword. Names are case-sensitive.
func ParseKeyword(name string) Keyword {
	if kw, ok := keywordLookup[name]; ok {
		return kw
	}
	return KeywordUnknown
}

func (k Keyword) String() string {
	if k <= KeywordUnknown || k >= keywordCount {
		return "Unknown"
	}
	return keywordNames[k]
}

// KeywordNames lists every recognised command name in declaration order.
func KeywordNames() []string {
	names := make([]string, 0, keywordCount-1)
	for kw := KeywordUnknown + 1; kw < keywordCount; kw++ {
		names = append(names, keywordNames[kw])
	}
	return names
}

func (k Keyword) isSelect() bool {
	return k >= KeywordSelect && k <= KeywordSelectString
}

// opensBlock reports whether the keyword pushes a frame.
func (k Keyword) opensBlock() bool {
	return k == KeywordIf || k == KeywordIfNot || k == KeywordFor || k.isSelect()
}
