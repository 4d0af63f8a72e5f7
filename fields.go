package rexif

import "fmt"

// UnknownPrefix is used as prefix for unknown tag names.
const UnknownPrefix = "UnknownTag_"

// Namespace identifies the directory a tag was found in.
type Namespace uint8

const (
	// NamespacePrimary is the main image directory (IFD0).
	NamespacePrimary Namespace = iota + 1
	// NamespaceExif is the Exif sub-directory.
	NamespaceExif
	// NamespaceGPS is the GPS sub-directory.
	NamespaceGPS
	// NamespaceInterop is the Interoperability sub-directory.
	NamespaceInterop
	// NamespaceThumbnail is the thumbnail directory (IFD1).
	NamespaceThumbnail
)

func (n Namespace) String() string {
	switch n {
	case NamespacePrimary:
		return "IFD0"
	case NamespaceExif:
		return "ExifIFD"
	case NamespaceGPS:
		return "GPSIFD"
	case NamespaceInterop:
		return "InteropIFD"
	case NamespaceThumbnail:
		return "IFD1"
	default:
		return fmt.Sprintf("Namespace(%d)", uint8(n))
	}
}

// Type is a TIFF entry data type code.
type Type uint16

const (
	TypeUnsignedByte  Type = 1
	TypeASCII         Type = 2
	TypeUnsignedShort Type = 3
	TypeUnsignedLong  Type = 4
	TypeUnsignedRat   Type = 5
	TypeSignedByte    Type = 6
	TypeUndef         Type = 7
	TypeSignedShort   Type = 8
	TypeSignedLong    Type = 9
	TypeSignedRat     Type = 10
	TypeFloat         Type = 11
	TypeDouble        Type = 12
)

// Size in bytes of each type.
var typeSize = map[Type]uint32{
	TypeUnsignedByte:  1,
	TypeASCII:         1,
	TypeUnsignedShort: 2,
	TypeUnsignedLong:  4,
	TypeUnsignedRat:   8,
	TypeSignedByte:    1,
	TypeUndef:         1,
	TypeSignedShort:   2,
	TypeSignedLong:    4,
	TypeSignedRat:     8,
	TypeFloat:         4,
	TypeDouble:        8,
}

func (t Type) String() string {
	switch t {
	case TypeUnsignedByte:
		return "BYTE"
	case TypeASCII:
		return "ASCII"
	case TypeUnsignedShort:
		return "SHORT"
	case TypeUnsignedLong:
		return "LONG"
	case TypeUnsignedRat:
		return "RATIONAL"
	case TypeSignedByte:
		return "SBYTE"
	case TypeUndef:
		return "UNDEFINED"
	case TypeSignedShort:
		return "SSHORT"
	case TypeSignedLong:
		return "SLONG"
	case TypeSignedRat:
		return "SRATIONAL"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Sub-directory pointer tags.
const (
	tagExifIFD    = 0x8769
	tagGPSIFD     = 0x8825
	tagInteropIFD = 0xa005
)

// Well-known tags consumed by the semantic post-processing pass.
const (
	tagOrientation      = 0x0112
	tagDateTime         = 0x0132
	tagThumbOffset      = 0x0201
	tagThumbLength      = 0x0202
	tagExifDateTimeOrig = 0x9003
	tagExifDateTimeDig  = 0x9004
	tagUserComment      = 0x9286
	tagGPSLatitudeRef   = 0x0001
	tagGPSLatitude      = 0x0002
	tagGPSLongitudeRef  = 0x0003
	tagGPSLongitude     = 0x0004
	tagXPTitle          = 0x9c9b
	tagXPComment        = 0x9c9c
	tagXPAuthor         = 0x9c9d
	tagXPKeywords       = 0x9c9e
	tagXPSubject        = 0x9c9f
)

// fieldInfo is one registry record: the canonical tag name, the expected
// type (alt is a second accepted type, e.g. SHORT-or-LONG tags), and the
// accepted count range. min == -1 leaves the count unconstrained, which is
// the case for all variable-length text and opaque tags.
type fieldInfo struct {
	name     string
	typ      Type // 0 = any
	alt      Type // 0 = none
	min, max int32
}

var (
	fieldsPrimary = map[uint16]fieldInfo{
		0x100: {"ImageWidth", TypeUnsignedShort, TypeUnsignedLong, 1, 1}, 0x101: {"ImageLength", TypeUnsignedShort, TypeUnsignedLong, 1, 1},
		0x102: {"BitsPerSample", TypeUnsignedShort, 0, 1, 4}, 0x103: {"Compression", TypeUnsignedShort, 0, 1, 1},
		0x106: {"PhotometricInterpretation", TypeUnsignedShort, 0, 1, 1}, 0x10e: {"ImageDescription", TypeASCII, 0, -1, -1},
		0x10f: {"Make", TypeASCII, 0, -1, -1}, 0x110: {"Model", TypeASCII, 0, -1, -1},
		0x111: {"StripOffsets", TypeUnsignedShort, TypeUnsignedLong, -1, -1}, 0x112: {"Orientation", TypeUnsignedShort, 0, 1, 1},
		0x115: {"SamplesPerPixel", TypeUnsignedShort, 0, 1, 1}, 0x116: {"RowsPerStrip", TypeUnsignedShort, TypeUnsignedLong, 1, 1},
		0x117: {"StripByteCounts", TypeUnsignedShort, TypeUnsignedLong, -1, -1},
		0x11a: {"XResolution", TypeUnsignedRat, 0, 1, 1}, 0x11b: {"YResolution", TypeUnsignedRat, 0, 1, 1},
		0x11c: {"PlanarConfiguration", TypeUnsignedShort, 0, 1, 1}, 0x128: {"ResolutionUnit", TypeUnsignedShort, 0, 1, 1},
		0x131: {"Software", TypeASCII, 0, -1, -1}, 0x132: {"DateTime", TypeASCII, 0, 20, 20},
		0x13b: {"Artist", TypeASCII, 0, -1, -1}, 0x13c: {"HostComputer", TypeASCII, 0, -1, -1},
		0x13e: {"WhitePoint", TypeUnsignedRat, 0, 2, 2}, 0x13f: {"PrimaryChromaticities", TypeUnsignedRat, 0, 6, 6},
		0x211: {"YCbCrCoefficients", TypeUnsignedRat, 0, 3, 3}, 0x212: {"YCbCrSubSampling", TypeUnsignedShort, 0, 2, 2},
		0x213: {"YCbCrPositioning", TypeUnsignedShort, 0, 1, 1}, 0x214: {"ReferenceBlackWhite", TypeUnsignedRat, 0, 6, 6},
		0x8298: {"Copyright", TypeASCII, 0, -1, -1},
		0x8769: {"ExifIFDPointer", TypeUnsignedLong, 0, 1, 1}, 0x8825: {"GPSInfoIFDPointer", TypeUnsignedLong, 0, 1, 1},
		0x9c9b: {"XPTitle", TypeUnsignedByte, TypeUndef, -1, -1}, 0x9c9c: {"XPComment", TypeUnsignedByte, TypeUndef, -1, -1},
		0x9c9d: {"XPAuthor", TypeUnsignedByte, TypeUndef, -1, -1}, 0x9c9e: {"XPKeywords", TypeUnsignedByte, TypeUndef, -1, -1},
		0x9c9f: {"XPSubject", TypeUnsignedByte, TypeUndef, -1, -1},
	}

	fieldsExif = map[uint16]fieldInfo{
		0x829a: {"ExposureTime", TypeUnsignedRat, 0, 1, 1}, 0x829d: {"FNumber", TypeUnsignedRat, 0, 1, 1},
		0x8822: {"ExposureProgram", TypeUnsignedShort, 0, 1, 1}, 0x8824: {"SpectralSensitivity", TypeASCII, 0, -1, -1},
		0x8827: {"ISOSpeedRatings", TypeUnsignedShort, 0, 1, 3}, 0x8828: {"OECF", TypeUndef, 0, -1, -1},
		0x8830: {"SensitivityType", TypeUnsignedShort, 0, 1, 1},
		0x9000: {"ExifVersion", TypeUndef, 0, 4, 4},
		0x9003: {"DateTimeOriginal", TypeASCII, 0, 20, 20}, 0x9004: {"DateTimeDigitized", TypeASCII, 0, 20, 20},
		0x9101: {"ComponentsConfiguration", TypeUndef, 0, 4, 4}, 0x9102: {"CompressedBitsPerPixel", TypeUnsignedRat, 0, 1, 1},
		0x9201: {"ShutterSpeedValue", TypeSignedRat, 0, 1, 1}, 0x9202: {"ApertureValue", TypeUnsignedRat, 0, 1, 1},
		0x9203: {"BrightnessValue", TypeSignedRat, 0, 1, 1}, 0x9204: {"ExposureBiasValue", TypeSignedRat, 0, 1, 1},
		0x9205: {"MaxApertureValue", TypeUnsignedRat, 0, 1, 1}, 0x9206: {"SubjectDistance", TypeUnsignedRat, 0, 1, 1},
		0x9207: {"MeteringMode", TypeUnsignedShort, 0, 1, 1}, 0x9208: {"LightSource", TypeUnsignedShort, 0, 1, 1},
		0x9209: {"Flash", TypeUnsignedShort, 0, 1, 2}, 0x920a: {"FocalLength", TypeUnsignedRat, 0, 1, 1},
		0x9214: {"SubjectArea", TypeUnsignedShort, 0, 2, 4}, 0x927c: {"MakerNote", TypeUndef, 0, -1, -1},
		0x9286: {"UserComment", TypeUndef, 0, -1, -1},
		0x9290: {"SubSecTime", TypeASCII, 0, -1, -1}, 0x9291: {"SubSecTimeOriginal", TypeASCII, 0, -1, -1},
		0x9292: {"SubSecTimeDigitized", TypeASCII, 0, -1, -1},
		0xa000: {"FlashpixVersion", TypeUndef, 0, 4, 4}, 0xa001: {"ColorSpace", TypeUnsignedShort, 0, 1, 1},
		0xa002: {"PixelXDimension", TypeUnsignedShort, TypeUnsignedLong, 1, 1}, 0xa003: {"PixelYDimension", TypeUnsignedShort, TypeUnsignedLong, 1, 1},
		0xa004: {"RelatedSoundFile", TypeASCII, 0, -1, -1},
		0xa005: {"InteroperabilityIFDPointer", TypeUnsignedLong, 0, 1, 1},
		0xa20b: {"FlashEnergy", TypeUnsignedRat, 0, 1, 1}, 0xa20c: {"SpatialFrequencyResponse", TypeUndef, 0, -1, -1},
		0xa20e: {"FocalPlaneXResolution", TypeUnsignedRat, 0, 1, 1}, 0xa20f: {"FocalPlaneYResolution", TypeUnsignedRat, 0, 1, 1},
		0xa210: {"FocalPlaneResolutionUnit", TypeUnsignedShort, 0, 1, 1}, 0xa214: {"SubjectLocation", TypeUnsignedShort, 0, 2, 2},
		0xa215: {"ExposureIndex", TypeUnsignedRat, 0, 1, 1}, 0xa217: {"SensingMethod", TypeUnsignedShort, 0, 1, 1},
		0xa300: {"FileSource", TypeUndef, 0, 1, 1}, 0xa301: {"SceneType", TypeUndef, 0, 1, 1},
		0xa302: {"CFAPattern", TypeUndef, 0, -1, -1}, 0xa401: {"CustomRendered", TypeUnsignedShort, 0, 1, 1},
		0xa402: {"ExposureMode", TypeUnsignedShort, 0, 1, 1}, 0xa403: {"WhiteBalance", TypeUnsignedShort, 0, 1, 1},
		0xa404: {"DigitalZoomRatio", TypeUnsignedRat, 0, 1, 1}, 0xa405: {"FocalLengthIn35mmFilm", TypeUnsignedShort, 0, 1, 1},
		0xa406: {"SceneCaptureType", TypeUnsignedShort, 0, 1, 1}, 0xa407: {"GainControl", TypeUnsignedShort, 0, 1, 1},
		0xa408: {"Contrast", TypeUnsignedShort, 0, 1, 1}, 0xa409: {"Saturation", TypeUnsignedShort, 0, 1, 1},
		0xa40a: {"Sharpness", TypeUnsignedShort, 0, 1, 1}, 0xa40b: {"DeviceSettingDescription", TypeUndef, 0, -1, -1},
		0xa40c: {"SubjectDistanceRange", TypeUnsignedShort, 0, 1, 1}, 0xa420: {"ImageUniqueID", TypeASCII, 0, -1, -1},
		0xa432: {"LensSpecification", TypeUnsignedRat, 0, 4, 4}, 0xa433: {"LensMake", TypeASCII, 0, -1, -1},
		0xa434: {"LensModel", TypeASCII, 0, -1, -1}, 0xa500: {"Gamma", TypeUnsignedRat, 0, 1, 1},
	}

	fieldsGPS = map[uint16]fieldInfo{
		0x0: {"GPSVersionID", TypeUnsignedByte, 0, 4, 4}, 0x1: {"GPSLatitudeRef", TypeASCII, 0, 2, 2},
		0x2: {"GPSLatitude", TypeUnsignedRat, 0, 3, 3}, 0x3: {"GPSLongitudeRef", TypeASCII, 0, 2, 2},
		0x4: {"GPSLongitude", TypeUnsignedRat, 0, 3, 3}, 0x5: {"GPSAltitudeRef", TypeUnsignedByte, 0, 1, 1},
		0x6: {"GPSAltitude", TypeUnsignedRat, 0, 1, 1}, 0x7: {"GPSTimeStamp", TypeUnsignedRat, 0, 3, 3},
		0x8: {"GPSSatellites", TypeASCII, 0, -1, -1}, 0x9: {"GPSStatus", TypeASCII, 0, 2, 2},
		0xa: {"GPSMeasureMode", TypeASCII, 0, 2, 2}, 0xb: {"GPSDOP", TypeUnsignedRat, 0, 1, 1},
		0xc: {"GPSSpeedRef", TypeASCII, 0, 2, 2}, 0xd: {"GPSSpeed", TypeUnsignedRat, 0, 1, 1},
		0xe: {"GPSTrackRef", TypeASCII, 0, 2, 2}, 0xf: {"GPSTrack", TypeUnsignedRat, 0, 1, 1},
		0x10: {"GPSImgDirectionRef", TypeASCII, 0, 2, 2}, 0x11: {"GPSImgDirection", TypeUnsignedRat, 0, 1, 1},
		0x12: {"GPSMapDatum", TypeASCII, 0, -1, -1}, 0x13: {"GPSDestLatitudeRef", TypeASCII, 0, 2, 2},
		0x14: {"GPSDestLatitude", TypeUnsignedRat, 0, 3, 3}, 0x15: {"GPSDestLongitudeRef", TypeASCII, 0, 2, 2},
		0x16: {"GPSDestLongitude", TypeUnsignedRat, 0, 3, 3}, 0x17: {"GPSDestBearingRef", TypeASCII, 0, 2, 2},
		0x18: {"GPSDestBearing", TypeUnsignedRat, 0, 1, 1}, 0x19: {"GPSDestDistanceRef", TypeASCII, 0, 2, 2},
		0x1a: {"GPSDestDistance", TypeUnsignedRat, 0, 1, 1}, 0x1b: {"GPSProcessingMethod", TypeUndef, 0, -1, -1},
		0x1c: {"GPSAreaInformation", TypeUndef, 0, -1, -1}, 0x1d: {"GPSDateStamp", TypeASCII, 0, 11, 11},
		0x1e: {"GPSDifferential", TypeUnsignedShort, 0, 1, 1},
	}

	fieldsInterop = map[uint16]fieldInfo{
		0x1: {"InteroperabilityIndex", TypeASCII, 0, -1, -1},
		0x2: {"InteroperabilityVersion", TypeUndef, 0, 4, 4},
	}

	fieldsThumbnail = map[uint16]fieldInfo{
		0x201: {"ThumbnailOffset", TypeUnsignedLong, 0, 1, 1},
		0x202: {"ThumbnailLength", TypeUnsignedLong, 0, 1, 1},
	}
)

// lookupField resolves (namespace, tag id) in the registry.
// The thumbnail directory reuses the primary table for the general TIFF
// tags it may repeat (Compression, resolution and so on).
func lookupField(ns Namespace, id uint16) (fieldInfo, bool) {
	switch ns {
	case NamespaceGPS:
		fi, ok := fieldsGPS[id]
		return fi, ok
	case NamespaceInterop:
		fi, ok := fieldsInterop[id]
		return fi, ok
	case NamespaceExif:
		fi, ok := fieldsExif[id]
		return fi, ok
	case NamespaceThumbnail:
		if fi, ok := fieldsThumbnail[id]; ok {
			return fi, true
		}
		fi, ok := fieldsPrimary[id]
		return fi, ok
	default:
		if fi, ok := fieldsPrimary[id]; ok {
			return fi, true
		}
		// Some writers put Exif-namespace tags directly in IFD0.
		fi, ok := fieldsExif[id]
		return fi, ok
	}
}
