package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionReplicates(t *testing.T) {
	tests := []struct {
		name  string
		flags FunctionFlags
		want  bool
	}{
		{"net client", FuncNet | FuncNetClient, true},
		{"net multicast", FuncNet | FuncNetMulticast, true},
		{"net client and multicast", FuncNet | FuncNetClient | FuncNetMulticast, true},
		{"server rpc with client bit", FuncNet | FuncNetServer | FuncNetClient, false},
		{"server rpc", FuncNet | FuncNetServer, false},
		{"no net bit", FuncNetClient | FuncNetMulticast, false},
		{"no net bit at all", FuncNetServer | FuncNetClient, false},
		{"net only", FuncNet, false},
		{"net reliable only", FuncNet | FuncNetReliable, false},
		{"zero", 0, false},
		{"literal bits client", 0x01000040, true},
		{"literal bits server", 0x01200040, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FunctionReplicates(tt.flags))

			fn := Function{Flags: tt.flags}
			assert.Equal(t, tt.want, fn.Replicates())
		})
	}
}

func TestClassFlagPredicates(t *testing.T) {
	assert.True(t, ClassFlags(0x00000001).IsAbstract())
	assert.True(t, ClassFlags(0x00004000).IsInterface())
	assert.True(t, ClassFlags(0x02000000).IsDeprecated())
	assert.True(t, ClassFlags(0x00000080).IsNative())
	assert.True(t, ClassFlags(0x00040000).IsCompiledFromBlueprint())

	var none ClassFlags
	assert.False(t, none.IsAbstract())
	assert.False(t, none.IsInterface())
	assert.False(t, none.IsDeprecated())

	// Neighbouring bits do not bleed into each other.
	assert.False(t, ClassFlags(0x00000002).IsAbstract())
	assert.False(t, ClassFlags(0x00002000).IsInterface())
}

func TestFunctionFlagPredicates(t *testing.T) {
	assert.True(t, FunctionFlags(0x00002000).IsStatic())
	assert.True(t, FunctionFlags(0x40000000).IsConst())
	assert.True(t, FunctionFlags(0x00000800).IsEvent())
	assert.True(t, FunctionFlags(0x04000000).IsBlueprintCallable())
	assert.True(t, FunctionFlags(0x80000000|0x00000040).IsNet())
	assert.False(t, FunctionFlags(0x00001000).IsStatic())
}

func TestPropertyFlagPredicates(t *testing.T) {
	assert.True(t, PropertyFlags(0x20).IsReplicated())
	assert.True(t, PropertyFlags(0x0000000100000000).IsRepNotify())
	assert.True(t, PropertyFlags(0x0000000800000000).IsEditorOnly())
	assert.True(t, PropertyFlags(0x0000000020000000).IsDeprecated())
	assert.False(t, PropertyFlags(0x0000000100000000).IsReplicated())
	assert.False(t, PropertyFlags(0xFFFFFFFF).IsRepNotify())
}

func TestHasRequiresEveryBit(t *testing.T) {
	f := FuncNet | FuncNetClient
	assert.True(t, f.Has(FuncNet))
	assert.True(t, f.Has(FuncNet|FuncNetClient))
	assert.False(t, f.Has(FuncNet|FuncNetServer))
}

func TestFlagNames(t *testing.T) {
	assert.Equal(t, []string{"Abstract", "Native"}, (ClassAbstract | ClassNative).Names())
	assert.Equal(t, []string{"Net", "NetClient"}, (FuncNetClient | FuncNet).Names())
	assert.Equal(t, []string{"Atomic"}, StructAtomic.Names())
	assert.Equal(t, []string{"Net", "RepNotify"}, (PropNet | PropRepNotify).Names())
	assert.Empty(t, ClassFlags(0).Names())
}
