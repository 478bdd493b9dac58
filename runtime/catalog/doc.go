// Package catalog holds the in-memory model of a reflected type catalogue:
// classes, structs and enums with their properties and functions.
//
// # Overview
//
// A catalogue is loaded from one or more raw sources (native reflection data
// and blueprint data) and indexed once by Build. The resulting Registry is
// immutable and can be shared between goroutines without locking.
//
// # Core Structures
//
//   - Type: a class or struct, with ordered Properties and Functions
//   - Property: a property or parameter whose Shape is one of ScalarShape,
//     StructShape, ContainerShape, EnumShape or MapShape
//   - Enum, Member: an enumeration and its enumerators
//   - ClassFlags, StructFlags, FunctionFlags, PropertyFlags: bit decoders
//   - Registry: FullName indexes, case-insensitive lookups, parent walks
//
// # Example Usage
//
//	reg, err := catalog.Build(catalog.BuildOptions{Descriptions: desc},
//		catalog.Source{Origin: catalog.OriginNative, Classes: classes},
//		catalog.Source{Origin: catalog.OriginBlueprint, Classes: bpClasses},
//	)
//	if err != nil {
//		return err
//	}
//
//	isActor := reg.ExtendsTransitively("Game.MyPawn", func(name string) bool {
//		return name == "Actor"
//	}, 0)
//
// # Duplicates
//
// When two entities share a FullName the later one shadows the earlier one in
// every exact index while both stay in the ordered sequences. Collisions are
// reported by Registry.Duplicates; BuildOptions.Strict rejects them instead.
package catalog
