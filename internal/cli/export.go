package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dougthor42/gdw/internal/export"
	"github.com/dougthor42/gdw/internal/model"
)

// exportOpts holds the optional output-file flags shared by calc and max.
type exportOpts struct {
	maskPath   string
	maskName   string
	pdfPath    string
	dxfPath    string
	xlsxPath   string
	labelsPath string
	lotSize    int
}

func (o *exportOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.maskPath, "mask", "", "write an OWT prober mask file to this path")
	cmd.Flags().StringVar(&o.maskName, "mask-name", "", "mask name written into the mask file (default: a generated ID)")
	cmd.Flags().StringVar(&o.pdfPath, "pdf", "", "write a wafer-map PDF to this path")
	cmd.Flags().StringVar(&o.dxfPath, "dxf", "", "write a wafer-map DXF to this path")
	cmd.Flags().StringVar(&o.xlsxPath, "xlsx", "", "write a die-map spreadsheet to this path")
	cmd.Flags().StringVar(&o.labelsPath, "labels", "", "write QR traveler labels to this path (PDF)")
	cmd.Flags().IntVar(&o.lotSize, "lot-size", 25, "wafers per lot for traveler labels")
}

// run performs every export whose path flag was set.
func (o *exportOpts) run(ctx context.Context, result model.GridResult, wafer model.Wafer, die model.DieSize) error {
	logger := loggerFromContext(ctx)

	mapID := o.maskName
	if mapID == "" {
		mapID = uuid.New().String()[:8]
	}

	if o.maskPath != "" {
		opts := export.MaskOptions{Name: mapID}
		if err := export.WriteMaskFile(o.maskPath, result, die, wafer.Diameter(), opts); err != nil {
			return err
		}
		logger.Infof("Wrote mask file to %s", o.maskPath)
	}
	if o.pdfPath != "" {
		if err := export.ExportPDF(o.pdfPath, result, wafer, die); err != nil {
			return err
		}
		logger.Infof("Wrote wafer map PDF to %s", o.pdfPath)
	}
	if o.dxfPath != "" {
		if err := export.ExportDXF(o.dxfPath, result, wafer, die); err != nil {
			return err
		}
		logger.Infof("Wrote wafer map DXF to %s", o.dxfPath)
	}
	if o.xlsxPath != "" {
		if err := export.ExportXLSX(o.xlsxPath, result, wafer, die); err != nil {
			return err
		}
		logger.Infof("Wrote die map spreadsheet to %s", o.xlsxPath)
	}
	if o.labelsPath != "" {
		if err := export.ExportTravelerLabels(o.labelsPath, mapID, result, wafer, die, o.lotSize); err != nil {
			return err
		}
		logger.Infof("Wrote %d traveler labels to %s", o.lotSize, o.labelsPath)
	}
	return nil
}
