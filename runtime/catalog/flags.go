package catalog

// ClassFlags is the bitmask stored in a class's Flags field.
type ClassFlags uint32

const (
	ClassAbstract                     ClassFlags = 0x00000001
	ClassDefaultConfig                ClassFlags = 0x00000002
	ClassConfig                       ClassFlags = 0x00000004
	ClassTransient                    ClassFlags = 0x00000008
	ClassOptional                     ClassFlags = 0x00000010
	ClassMatchedSerializers           ClassFlags = 0x00000020
	ClassProjectUserConfig            ClassFlags = 0x00000040
	ClassNative                       ClassFlags = 0x00000080
	ClassNoExport                     ClassFlags = 0x00000100
	ClassNotPlaceable                 ClassFlags = 0x00000200
	ClassPerObjectConfig              ClassFlags = 0x00000400
	ClassReplicationDataIsSetUp       ClassFlags = 0x00000800
	ClassEditInlineNew                ClassFlags = 0x00001000
	ClassCollapseCategories           ClassFlags = 0x00002000
	ClassInterface                    ClassFlags = 0x00004000
	ClassCustomConstructor            ClassFlags = 0x00008000
	ClassConst                        ClassFlags = 0x00010000
	ClassNeedsDeferredDependencyLoad  ClassFlags = 0x00020000
	ClassCompiledFromBlueprint        ClassFlags = 0x00040000
	ClassMinimalAPI                   ClassFlags = 0x00080000
	ClassRequiredAPI                  ClassFlags = 0x00100000
	ClassDefaultToInstanced           ClassFlags = 0x00200000
	ClassTokenStreamAssembled         ClassFlags = 0x00400000
	ClassHasInstancedReference        ClassFlags = 0x00800000
	ClassHidden                       ClassFlags = 0x01000000
	ClassDeprecated                   ClassFlags = 0x02000000
	ClassHideDropDown                 ClassFlags = 0x04000000
	ClassGlobalUserConfig             ClassFlags = 0x08000000
	ClassIntrinsic                    ClassFlags = 0x10000000
	ClassConstructed                  ClassFlags = 0x20000000
	ClassConfigDoNotCheckDefaults     ClassFlags = 0x40000000
	ClassNewerVersionExists           ClassFlags = 0x80000000
)

var classFlagNames = []flagName[ClassFlags]{
	{ClassAbstract, "Abstract"},
	{ClassDefaultConfig, "DefaultConfig"},
	{ClassConfig, "Config"},
	{ClassTransient, "Transient"},
	{ClassOptional, "Optional"},
	{ClassMatchedSerializers, "MatchedSerializers"},
	{ClassProjectUserConfig, "ProjectUserConfig"},
	{ClassNative, "Native"},
	{ClassNoExport, "NoExport"},
	{ClassNotPlaceable, "NotPlaceable"},
	{ClassPerObjectConfig, "PerObjectConfig"},
	{ClassReplicationDataIsSetUp, "ReplicationDataIsSetUp"},
	{ClassEditInlineNew, "EditInlineNew"},
	{ClassCollapseCategories, "CollapseCategories"},
	{ClassInterface, "Interface"},
	{ClassCustomConstructor, "CustomConstructor"},
	{ClassConst, "Const"},
	{ClassNeedsDeferredDependencyLoad, "NeedsDeferredDependencyLoading"},
	{ClassCompiledFromBlueprint, "CompiledFromBlueprint"},
	{ClassMinimalAPI, "MinimalAPI"},
	{ClassRequiredAPI, "RequiredAPI"},
	{ClassDefaultToInstanced, "DefaultToInstanced"},
	{ClassTokenStreamAssembled, "TokenStreamAssembled"},
	{ClassHasInstancedReference, "HasInstancedReference"},
	{ClassHidden, "Hidden"},
	{ClassDeprecated, "Deprecated"},
	{ClassHideDropDown, "HideDropDown"},
	{ClassGlobalUserConfig, "GlobalUserConfig"},
	{ClassIntrinsic, "Intrinsic"},
	{ClassConstructed, "Constructed"},
	{ClassConfigDoNotCheckDefaults, "ConfigDoNotCheckDefaults"},
	{ClassNewerVersionExists, "NewerVersionExists"},
}

// Has reports whether every bit of flag is set.
func (f ClassFlags) Has(flag ClassFlags) bool { return f&flag == flag }

// IsAbstract reports whether ClassAbstract is set.
func (f ClassFlags) IsAbstract() bool { return f.Has(ClassAbstract) }

// IsNative reports whether ClassNative is set.
func (f ClassFlags) IsNative() bool { return f.Has(ClassNative) }

// IsInterface reports whether ClassInterface is set.
func (f ClassFlags) IsInterface() bool { return f.Has(ClassInterface) }

// IsDeprecated reports whether ClassDeprecated is set.
func (f ClassFlags) IsDeprecated() bool { return f.Has(ClassDeprecated) }

// IsConfig reports whether ClassConfig is set.
func (f ClassFlags) IsConfig() bool { return f.Has(ClassConfig) }

// IsTransient reports whether ClassTransient is set.
func (f ClassFlags) IsTransient() bool { return f.Has(ClassTransient) }

// IsHidden reports whether ClassHidden is set.
func (f ClassFlags) IsHidden() bool { return f.Has(ClassHidden) }

// IsConst reports whether ClassConst is set.
func (f ClassFlags) IsConst() bool { return f.Has(ClassConst) }

// IsCompiledFromBlueprint reports whether ClassCompiledFromBlueprint is set.
func (f ClassFlags) IsCompiledFromBlueprint() bool { return f.Has(ClassCompiledFromBlueprint) }

// Names lists the names of the set bits in ascending bit order.
func (f ClassFlags) Names() []string { return flagNames(f, classFlagNames) }

// StructFlags is the bitmask stored in a struct's Flags field.
type StructFlags uint32

const (
	StructNative                     StructFlags = 0x00000001
	StructIdenticalNative            StructFlags = 0x00000002
	StructHasInstancedReference      StructFlags = 0x00000004
	StructNoExport                   StructFlags = 0x00000008
	StructAtomic                     StructFlags = 0x00000010
	StructImmutable                  StructFlags = 0x00000020
	StructAddStructReferencedObjects StructFlags = 0x00000040
	StructRequiredAPI                StructFlags = 0x00000200
	StructNetSerializeNative         StructFlags = 0x00000400
	StructSerializeNative            StructFlags = 0x00000800
	StructCopyNative                 StructFlags = 0x00001000
	StructIsPlainOldData             StructFlags = 0x00002000
	StructNoDestructor               StructFlags = 0x00004000
	StructZeroConstructor            StructFlags = 0x00008000
	StructExportTextItemNative       StructFlags = 0x00010000
	StructImportTextItemNative       StructFlags = 0x00020000
	StructPostSerializeNative        StructFlags = 0x00040000
	StructSerializeFromMismatchedTag StructFlags = 0x00080000
	StructNetDeltaSerializeNative    StructFlags = 0x00100000
	StructPostScriptConstruct        StructFlags = 0x00200000
	StructNetSharedSerialization     StructFlags = 0x00400000
	StructTrashed                    StructFlags = 0x00800000
	StructNewerVersionExists         StructFlags = 0x01000000
	StructCanEditChange              StructFlags = 0x02000000
)

var structFlagNames = []flagName[StructFlags]{
	{StructNative, "Native"},
	{StructIdenticalNative, "IdenticalNative"},
	{StructHasInstancedReference, "HasInstancedReference"},
	{StructNoExport, "NoExport"},
	{StructAtomic, "Atomic"},
	{StructImmutable, "Immutable"},
	{StructAddStructReferencedObjects, "AddStructReferencedObjects"},
	{StructRequiredAPI, "RequiredAPI"},
	{StructNetSerializeNative, "NetSerializeNative"},
	{StructSerializeNative, "SerializeNative"},
	{StructCopyNative, "CopyNative"},
	{StructIsPlainOldData, "IsPlainOldData"},
	{StructNoDestructor, "NoDestructor"},
	{StructZeroConstructor, "ZeroConstructor"},
	{StructExportTextItemNative, "ExportTextItemNative"},
	{StructImportTextItemNative, "ImportTextItemNative"},
	{StructPostSerializeNative, "PostSerializeNative"},
	{StructSerializeFromMismatchedTag, "SerializeFromMismatchedTag"},
	{StructNetDeltaSerializeNative, "NetDeltaSerializeNative"},
	{StructPostScriptConstruct, "PostScriptConstruct"},
	{StructNetSharedSerialization, "NetSharedSerialization"},
	{StructTrashed, "Trashed"},
	{StructNewerVersionExists, "NewerVersionExists"},
	{StructCanEditChange, "CanEditChange"},
}

// Has reports whether every bit of flag is set.
func (f StructFlags) Has(flag StructFlags) bool { return f&flag == flag }

// IsNative reports whether StructNative is set.
func (f StructFlags) IsNative() bool { return f.Has(StructNative) }

// IsAtomic reports whether StructAtomic is set.
func (f StructFlags) IsAtomic() bool { return f.Has(StructAtomic) }

// IsImmutable reports whether StructImmutable is set.
func (f StructFlags) IsImmutable() bool { return f.Has(StructImmutable) }

// IsPlainOldData reports whether StructIsPlainOldData is set.
func (f StructFlags) IsPlainOldData() bool { return f.Has(StructIsPlainOldData) }

// IsTrashed reports whether StructTrashed is set.
func (f StructFlags) IsTrashed() bool { return f.Has(StructTrashed) }

// Names lists the names of the set bits in ascending bit order.
func (f StructFlags) Names() []string { return flagNames(f, structFlagNames) }

// FunctionFlags is the bitmask stored in a function's Flags field.
type FunctionFlags uint32

const (
	FuncFinal                 FunctionFlags = 0x00000001
	FuncRequiredAPI           FunctionFlags = 0x00000002
	FuncBlueprintAuthorityOnly FunctionFlags = 0x00000004
	FuncBlueprintCosmetic     FunctionFlags = 0x00000008
	FuncNet                   FunctionFlags = 0x00000040
	FuncNetReliable           FunctionFlags = 0x00000080
	FuncNetRequest            FunctionFlags = 0x00000100
	FuncExec                  FunctionFlags = 0x00000200
	FuncNative                FunctionFlags = 0x00000400
	FuncEvent                 FunctionFlags = 0x00000800
	FuncNetResponse           FunctionFlags = 0x00001000
	FuncStatic                FunctionFlags = 0x00002000
	FuncNetMulticast          FunctionFlags = 0x00004000
	FuncUbergraphFunction     FunctionFlags = 0x00008000
	FuncMulticastDelegate     FunctionFlags = 0x00010000
	FuncPublic                FunctionFlags = 0x00020000
	FuncPrivate               FunctionFlags = 0x00040000
	FuncProtected             FunctionFlags = 0x00080000
	FuncDelegate              FunctionFlags = 0x00100000
	FuncNetServer             FunctionFlags = 0x00200000
	FuncHasOutParms           FunctionFlags = 0x00400000
	FuncHasDefaults           FunctionFlags = 0x00800000
	FuncNetClient             FunctionFlags = 0x01000000
	FuncDLLImport             FunctionFlags = 0x02000000
	FuncBlueprintCallable     FunctionFlags = 0x04000000
	FuncBlueprintEvent        FunctionFlags = 0x08000000
	FuncBlueprintPure         FunctionFlags = 0x10000000
	FuncEditorOnly            FunctionFlags = 0x20000000
	FuncConst                 FunctionFlags = 0x40000000
	FuncNetValidate           FunctionFlags = 0x80000000
)

var functionFlagNames = []flagName[FunctionFlags]{
	{FuncFinal, "Final"},
	{FuncRequiredAPI, "RequiredAPI"},
	{FuncBlueprintAuthorityOnly, "BlueprintAuthorityOnly"},
	{FuncBlueprintCosmetic, "BlueprintCosmetic"},
	{FuncNet, "Net"},
	{FuncNetReliable, "NetReliable"},
	{FuncNetRequest, "NetRequest"},
	{FuncExec, "Exec"},
	{FuncNative, "Native"},
	{FuncEvent, "Event"},
	{FuncNetResponse, "NetResponse"},
	{FuncStatic, "Static"},
	{FuncNetMulticast, "NetMulticast"},
	{FuncUbergraphFunction, "UbergraphFunction"},
	{FuncMulticastDelegate, "MulticastDelegate"},
	{FuncPublic, "Public"},
	{FuncPrivate, "Private"},
	{FuncProtected, "Protected"},
	{FuncDelegate, "Delegate"},
	{FuncNetServer, "NetServer"},
	{FuncHasOutParms, "HasOutParms"},
	{FuncHasDefaults, "HasDefaults"},
	{FuncNetClient, "NetClient"},
	{FuncDLLImport, "DLLImport"},
	{FuncBlueprintCallable, "BlueprintCallable"},
	{FuncBlueprintEvent, "BlueprintEvent"},
	{FuncBlueprintPure, "BlueprintPure"},
	{FuncEditorOnly, "EditorOnly"},
	{FuncConst, "Const"},
	{FuncNetValidate, "NetValidate"},
}

// Has reports whether every bit of flag is set.
func (f FunctionFlags) Has(flag FunctionFlags) bool { return f&flag == flag }

// IsFinal reports whether FuncFinal is set.
func (f FunctionFlags) IsFinal() bool { return f.Has(FuncFinal) }

// IsNet reports whether FuncNet is set.
func (f FunctionFlags) IsNet() bool { return f.Has(FuncNet) }

// IsNetReliable reports whether FuncNetReliable is set.
func (f FunctionFlags) IsNetReliable() bool { return f.Has(FuncNetReliable) }

// IsNetServer reports whether FuncNetServer is set.
func (f FunctionFlags) IsNetServer() bool { return f.Has(FuncNetServer) }

// IsNetClient reports whether FuncNetClient is set.
func (f FunctionFlags) IsNetClient() bool { return f.Has(FuncNetClient) }

// IsNetMulticast reports whether FuncNetMulticast is set.
func (f FunctionFlags) IsNetMulticast() bool { return f.Has(FuncNetMulticast) }

// IsNative reports whether FuncNative is set.
func (f FunctionFlags) IsNative() bool { return f.Has(FuncNative) }

// IsEvent reports whether FuncEvent is set.
func (f FunctionFlags) IsEvent() bool { return f.Has(FuncEvent) }

// IsStatic reports whether FuncStatic is set.
func (f FunctionFlags) IsStatic() bool { return f.Has(FuncStatic) }

// IsConst reports whether FuncConst is set.
func (f FunctionFlags) IsConst() bool { return f.Has(FuncConst) }

// IsExec reports whether FuncExec is set.
func (f FunctionFlags) IsExec() bool { return f.Has(FuncExec) }

// IsDelegate reports whether FuncDelegate is set.
func (f FunctionFlags) IsDelegate() bool { return f.Has(FuncDelegate) }

// IsPublic reports whether FuncPublic is set.
func (f FunctionFlags) IsPublic() bool { return f.Has(FuncPublic) }

// IsPrivate reports whether FuncPrivate is set.
func (f FunctionFlags) IsPrivate() bool { return f.Has(FuncPrivate) }

// IsProtected reports whether FuncProtected is set.
func (f FunctionFlags) IsProtected() bool { return f.Has(FuncProtected) }

// IsBlueprintCallable reports whether FuncBlueprintCallable is set.
func (f FunctionFlags) IsBlueprintCallable() bool { return f.Has(FuncBlueprintCallable) }

// IsBlueprintEvent reports whether FuncBlueprintEvent is set.
func (f FunctionFlags) IsBlueprintEvent() bool { return f.Has(FuncBlueprintEvent) }

// IsBlueprintPure reports whether FuncBlueprintPure is set.
func (f FunctionFlags) IsBlueprintPure() bool { return f.Has(FuncBlueprintPure) }

// IsEditorOnly reports whether FuncEditorOnly is set.
func (f FunctionFlags) IsEditorOnly() bool { return f.Has(FuncEditorOnly) }

// Names lists the names of the set bits in ascending bit order.
func (f FunctionFlags) Names() []string { return flagNames(f, functionFlagNames) }

// FunctionReplicates reports whether a function with these flags is
// replicated to clients: Net must be set, NetServer must not be, and at
// least one of NetClient or NetMulticast must be. Server RPCs carry the Net
// bit but are not visible to clients.
func FunctionReplicates(flags FunctionFlags) bool {
	if !flags.IsNet() {
		return false
	}
	if flags.IsNetServer() {
		return false
	}
	return flags.IsNetClient() || flags.IsNetMulticast()
}

// PropertyFlags is the 64-bit bitmask stored in a property's Flags field.
type PropertyFlags uint64

const (
	PropEdit                           PropertyFlags = 0x0000000000000001
	PropConstParm                      PropertyFlags = 0x0000000000000002
	PropBlueprintVisible               PropertyFlags = 0x0000000000000004
	PropExportObject                   PropertyFlags = 0x0000000000000008
	PropBlueprintReadOnly              PropertyFlags = 0x0000000000000010
	PropNet                            PropertyFlags = 0x0000000000000020
	PropEditFixedSize                  PropertyFlags = 0x0000000000000040
	PropParm                           PropertyFlags = 0x0000000000000080
	PropOutParm                        PropertyFlags = 0x0000000000000100
	PropZeroConstructor                PropertyFlags = 0x0000000000000200
	PropReturnParm                     PropertyFlags = 0x0000000000000400
	PropDisableEditOnTemplate          PropertyFlags = 0x0000000000000800
	PropNonNullable                    PropertyFlags = 0x0000000000001000
	PropTransient                      PropertyFlags = 0x0000000000002000
	PropConfig                         PropertyFlags = 0x0000000000004000
	PropRequiredParm                   PropertyFlags = 0x0000000000008000
	PropDisableEditOnInstance          PropertyFlags = 0x0000000000010000
	PropEditConst                      PropertyFlags = 0x0000000000020000
	PropGlobalConfig                   PropertyFlags = 0x0000000000040000
	PropInstancedReference             PropertyFlags = 0x0000000000080000
	PropDuplicateTransient             PropertyFlags = 0x0000000000200000
	PropSaveGame                       PropertyFlags = 0x0000000001000000
	PropNoClear                        PropertyFlags = 0x0000000002000000
	PropReferenceParm                  PropertyFlags = 0x0000000008000000
	PropBlueprintAssignable            PropertyFlags = 0x0000000010000000
	PropDeprecated                     PropertyFlags = 0x0000000020000000
	PropIsPlainOldData                 PropertyFlags = 0x0000000040000000
	PropRepSkip                        PropertyFlags = 0x0000000080000000
	PropRepNotify                      PropertyFlags = 0x0000000100000000
	PropInterp                         PropertyFlags = 0x0000000200000000
	PropNonTransactional               PropertyFlags = 0x0000000400000000
	PropEditorOnly                     PropertyFlags = 0x0000000800000000
	PropNoDestructor                   PropertyFlags = 0x0000001000000000
	PropAutoWeak                       PropertyFlags = 0x0000004000000000
	PropContainsInstancedReference     PropertyFlags = 0x0000008000000000
	PropAssetRegistrySearchable        PropertyFlags = 0x0000010000000000
	PropSimpleDisplay                  PropertyFlags = 0x0000020000000000
	PropAdvancedDisplay                PropertyFlags = 0x0000040000000000
	PropProtected                      PropertyFlags = 0x0000080000000000
	PropBlueprintCallable              PropertyFlags = 0x0000100000000000
	PropBlueprintAuthorityOnly         PropertyFlags = 0x0000200000000000
	PropTextExportTransient            PropertyFlags = 0x0000400000000000
	PropNonPIEDuplicateTransient       PropertyFlags = 0x0000800000000000
	PropExposeOnSpawn                  PropertyFlags = 0x0001000000000000
	PropPersistentInstance             PropertyFlags = 0x0002000000000000
	PropUObjectWrapper                 PropertyFlags = 0x0004000000000000
	PropHasGetValueTypeHash            PropertyFlags = 0x0008000000000000
	PropNativeAccessSpecifierPublic    PropertyFlags = 0x0010000000000000
	PropNativeAccessSpecifierProtected PropertyFlags = 0x0020000000000000
	PropNativeAccessSpecifierPrivate   PropertyFlags = 0x0040000000000000
	PropSkipSerialization              PropertyFlags = 0x0080000000000000
	PropTObjectPtr                     PropertyFlags = 0x0100000000000000
	PropExperimentalOverridableLogic   PropertyFlags = 0x0200000000000000
	PropExperimentalAlwaysOverriden    PropertyFlags = 0x0400000000000000
)

var propertyFlagNames = []flagName[PropertyFlags]{
	{PropEdit, "Edit"},
	{PropConstParm, "ConstParm"},
	{PropBlueprintVisible, "BlueprintVisible"},
	{PropExportObject, "ExportObject"},
	{PropBlueprintReadOnly, "BlueprintReadOnly"},
	{PropNet, "Net"},
	{PropEditFixedSize, "EditFixedSize"},
	{PropParm, "Parm"},
	{PropOutParm, "OutParm"},
	{PropZeroConstructor, "ZeroConstructor"},
	{PropReturnParm, "ReturnParm"},
	{PropDisableEditOnTemplate, "DisableEditOnTemplate"},
	{PropNonNullable, "NonNullable"},
	{PropTransient, "Transient"},
	{PropConfig, "Config"},
	{PropRequiredParm, "RequiredParm"},
	{PropDisableEditOnInstance, "DisableEditOnInstance"},
	{PropEditConst, "EditConst"},
	{PropGlobalConfig, "GlobalConfig"},
	{PropInstancedReference, "InstancedReference"},
	{PropDuplicateTransient, "DuplicateTransient"},
	{PropSaveGame, "SaveGame"},
	{PropNoClear, "NoClear"},
	{PropReferenceParm, "ReferenceParm"},
	{PropBlueprintAssignable, "BlueprintAssignable"},
	{PropDeprecated, "Deprecated"},
	{PropIsPlainOldData, "IsPlainOldData"},
	{PropRepSkip, "RepSkip"},
	{PropRepNotify, "RepNotify"},
	{PropInterp, "Interp"},
	{PropNonTransactional, "NonTransactional"},
	{PropEditorOnly, "EditorOnly"},
	{PropNoDestructor, "NoDestructor"},
	{PropAutoWeak, "AutoWeak"},
	{PropContainsInstancedReference, "ContainsInstancedReference"},
	{PropAssetRegistrySearchable, "AssetRegistrySearchable"},
	{PropSimpleDisplay, "SimpleDisplay"},
	{PropAdvancedDisplay, "AdvancedDisplay"},
	{PropProtected, "Protected"},
	{PropBlueprintCallable, "BlueprintCallable"},
	{PropBlueprintAuthorityOnly, "BlueprintAuthorityOnly"},
	{PropTextExportTransient, "TextExportTransient"},
	{PropNonPIEDuplicateTransient, "NonPIEDuplicateTransient"},
	{PropExposeOnSpawn, "ExposeOnSpawn"},
	{PropPersistentInstance, "PersistentInstance"},
	{PropUObjectWrapper, "UObjectWrapper"},
	{PropHasGetValueTypeHash, "HasGetValueTypeHash"},
	{PropNativeAccessSpecifierPublic, "NativeAccessSpecifierPublic"},
	{PropNativeAccessSpecifierProtected, "NativeAccessSpecifierProtected"},
	{PropNativeAccessSpecifierPrivate, "NativeAccessSpecifierPrivate"},
	{PropSkipSerialization, "SkipSerialization"},
	{PropTObjectPtr, "TObjectPtr"},
	{PropExperimentalOverridableLogic, "ExperimentalOverridableLogic"},
	{PropExperimentalAlwaysOverriden, "ExperimentalAlwaysOverriden"},
}

// Has reports whether every bit of flag is set.
func (f PropertyFlags) Has(flag PropertyFlags) bool { return f&flag == flag }

// IsEditable reports whether PropEdit is set.
func (f PropertyFlags) IsEditable() bool { return f.Has(PropEdit) }

// IsBlueprintVisible reports whether PropBlueprintVisible is set.
func (f PropertyFlags) IsBlueprintVisible() bool { return f.Has(PropBlueprintVisible) }

// IsBlueprintReadOnly reports whether PropBlueprintReadOnly is set.
func (f PropertyFlags) IsBlueprintReadOnly() bool { return f.Has(PropBlueprintReadOnly) }

// IsReplicated reports whether PropNet is set.
func (f PropertyFlags) IsReplicated() bool { return f.Has(PropNet) }

// IsRepNotify reports whether PropRepNotify is set.
func (f PropertyFlags) IsRepNotify() bool { return f.Has(PropRepNotify) }

// IsParm reports whether PropParm is set.
func (f PropertyFlags) IsParm() bool { return f.Has(PropParm) }

// IsOutParm reports whether PropOutParm is set.
func (f PropertyFlags) IsOutParm() bool { return f.Has(PropOutParm) }

// IsReturnParm reports whether PropReturnParm is set.
func (f PropertyFlags) IsReturnParm() bool { return f.Has(PropReturnParm) }

// IsConstParm reports whether PropConstParm is set.
func (f PropertyFlags) IsConstParm() bool { return f.Has(PropConstParm) }

// IsTransient reports whether PropTransient is set.
func (f PropertyFlags) IsTransient() bool { return f.Has(PropTransient) }

// IsConfig reports whether PropConfig is set.
func (f PropertyFlags) IsConfig() bool { return f.Has(PropConfig) }

// IsDeprecated reports whether PropDeprecated is set.
func (f PropertyFlags) IsDeprecated() bool { return f.Has(PropDeprecated) }

// IsEditorOnly reports whether PropEditorOnly is set.
func (f PropertyFlags) IsEditorOnly() bool { return f.Has(PropEditorOnly) }

// IsSaveGame reports whether PropSaveGame is set.
func (f PropertyFlags) IsSaveGame() bool { return f.Has(PropSaveGame) }

// Names lists the names of the set bits in ascending bit order.
func (f PropertyFlags) Names() []string { return flagNames(f, propertyFlagNames) }

type flagName[T ~uint32 | ~uint64] struct {
	bit  T
	name string
}

func flagNames[T ~uint32 | ~uint64](flags T, table []flagName[T]) []string {
	var names []string
	for _, fn := range table {
		if flags&fn.bit != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}
