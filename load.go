package trackgen

type LoadOptions struct {
	Options
	ParseOptions
}

// LoadPackage parses a package directory and builds a schema from every
// selected record. Schema errors of independent records are collected into
// an ErrorList.
func LoadPackage(dir string, opt LoadOptions) (*Schema, error) {
	pkg, err := ParseDir(dir, opt.ParseOptions)
	if err != nil {
		return nil, err
	}
	scm := NewSchema(pkg.Path, pkg.Name)
	if err := buildRecords(scm, pkg.Records, opt.Options); err != nil {
		return nil, err
	}
	opt.logger().Debug("trackgen: package loaded", "dir", pkg.Dir, "package", pkg.Name, "records", len(scm.records))
	return scm, nil
}

func buildRecords(scm *Schema, raws []*RawRecord, opt Options) error {
	var errs ErrorList
	for _, raw := range raws {
		rs, err := Build(raw, opt)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scm.AddRecord(rs)
	}
	return errs.Err()
}
